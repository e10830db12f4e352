package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Fixed namespaces so the same seed always derives the same id.
var (
	propertyNamespace = uuid.MustParse("8f2a1c4e-0d3b-4f6a-9c71-2e5b8d04a913")
	inquiryNamespace  = uuid.MustParse("c61e9b27-44f8-4ab2-8d05-7f3a90c1e6b4")
)

// PropertyID derives a listing id from its location, price and creation time.
// The id is assigned at creation and immutable thereafter.
func PropertyID(loc Location, price int64, createdAt time.Time) string {
	seed := fmt.Sprintf("%s|%s|%s|%s|%d|%d",
		loc.City, loc.Suburb, loc.Area, loc.RoadName, price, createdAt.UnixNano())
	return "prop-" + uuid.NewSHA1(propertyNamespace, []byte(seed)).String()
}

// InquiryID derives an inquiry id from the property it targets, the customer
// name and the creation time.
func InquiryID(propertyID, customerName string, createdAt time.Time) string {
	seed := fmt.Sprintf("%s|%s|%d", propertyID, customerName, createdAt.UnixNano())
	return "inq-" + uuid.NewSHA1(inquiryNamespace, []byte(seed)).String()
}
