package main

import (
	"os"
	"strings"

	"estateflow/admin"
	"estateflow/agent"
	"estateflow/analytics"
	"estateflow/domain"
	"estateflow/identity"
	"estateflow/inquiry"
	"estateflow/logging"
	"estateflow/policy"
	"estateflow/profile"
	"estateflow/property"
	"estateflow/store"
)

func adminPrincipals(raw string) []domain.Principal {
	var out []domain.Principal
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, domain.Principal(part))
		}
	}
	return out
}

// application holds the constructed service graph.
type application struct {
	identity  *identity.Service
	agents    *agent.Service
	listings  *property.Service
	inquiries *inquiry.Service
	profiles  *profile.Service
	admin     *admin.Service
	analytics *analytics.Service
}

func newApplication(st *store.Store, resolver *policy.Resolver, secret, region string) *application {
	return &application{
		identity:  identity.NewService(identity.NewMemoryRepository(), secret),
		agents:    agent.NewService(st, resolver),
		listings:  property.NewService(st, resolver),
		inquiries: inquiry.NewService(st, resolver),
		profiles:  profile.NewService(st, resolver),
		admin:     admin.NewService(st, resolver),
		analytics: analytics.NewService(st, resolver, region),
	}
}

func main() {
	logging.Init("officed")

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		logging.Logger.Fatal("TOKEN_SECRET is required")
	}
	admins := adminPrincipals(os.Getenv("ADMIN_PRINCIPALS"))
	if len(admins) == 0 {
		logging.Logger.Warn("no ADMIN_PRINCIPALS configured; administrative operations will be rejected")
	}

	region := os.Getenv("REGION_NAME")
	if region == "" {
		region = analytics.DefaultRegion
	}

	st := store.New()
	resolver := policy.NewResolver(admins)
	newApplication(st, resolver, secret, region)

	logging.Logger.WithFields(map[string]interface{}{
		"region": region,
		"admins": len(admins),
	}).Info("office services ready")
}
