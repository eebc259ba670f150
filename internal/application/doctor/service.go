package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appconfig "github.com/doeshing/textpolish/internal/application/config"
	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

const probeKey = "doctor_probe"

// ErrUnhealthy is returned when at least one check failed.
var ErrUnhealthy = errors.New("one or more checks failed")

// CredentialLookup returns the key for a model and the variable it was read from.
type CredentialLookup func(domain.ModelDefinition) (string, string)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Store          ports.KeyValueStore
	History        ports.HistoryStore
	Credentials    CredentialLookup
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format %s, language %s", cfg.ConfigFormatVersion, cfg.GetLanguage())))
	}

	checks = append(checks, tierCheck(cfg))
	checks = append(checks, s.credentialCheck(cfg))
	checks = append(checks, s.storageCheck(cfg))

	if s.History != nil {
		checks = append(checks, ok("History", fmt.Sprintf("%d records under %s", len(s.History.All()), cfg.GetStorageKey())))
	}

	report := domain.HealthReport{Checks: checks}
	if report.HasErrors() {
		return report, ErrUnhealthy
	}
	return report, nil
}

func tierCheck(cfg domain.Config) domain.HealthCheck {
	light, err := cfg.ModelForTier(domain.TierLight)
	if err != nil {
		return fail("Model tiers", err.Error())
	}
	heavy, err := cfg.ModelForTier(domain.TierHeavy)
	if err != nil {
		return fail("Model tiers", err.Error())
	}
	return ok("Model tiers", fmt.Sprintf("light=%s (%s), heavy=%s (%s)", light.Name, light.ModelID, heavy.Name, heavy.ModelID))
}

func (s *Service) credentialCheck(cfg domain.Config) domain.HealthCheck {
	if s.Credentials == nil {
		return warn("API keys", "credential lookup not configured")
	}
	var found, missing []string
	for _, model := range cfg.TierModels() {
		if !model.NeedsCredential() {
			found = append(found, model.Name+" (offline)")
			continue
		}
		if key, source := s.Credentials(model); key != "" {
			found = append(found, fmt.Sprintf("%s via %s", model.Name, source))
			continue
		}
		missing = append(missing, fmt.Sprintf("%s needs %s", model.Name, model.AuthEnvVar))
	}
	if len(missing) > 0 {
		return fail("API keys", strings.Join(missing, "; "))
	}
	return ok("API keys", strings.Join(found, ", "))
}

func (s *Service) storageCheck(cfg domain.Config) domain.HealthCheck {
	if s.Store == nil {
		return warn("Storage", "no key-value store")
	}
	name := fmt.Sprintf("Storage (%s)", cfg.GetStorageBackend())
	payload := []byte("ok")
	if err := s.Store.Set(probeKey, payload); err != nil {
		return fail(name, fmt.Sprintf("write failed: %v", err))
	}
	value, found, err := s.Store.Get(probeKey)
	if err != nil || !found || string(value) != string(payload) {
		return fail(name, fmt.Sprintf("read back failed: found=%v err=%v", found, err))
	}
	if err := s.Store.Remove(probeKey); err != nil {
		return warn(name, fmt.Sprintf("probe cleanup failed: %v", err))
	}
	return ok(name, "read/write round trip succeeded")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
