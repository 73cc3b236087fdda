package credentials

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// SeedProfile is one unverified key pair read from a seed file. The section
// name doubles as the principal the binding is attached to.
type SeedProfile struct {
	Principal       string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// LoadSeedFile parses an ini seed file in the shared-credentials layout
// (aws_access_key_id / aws_secret_access_key / region per section). Used to
// pre-connect accounts in development; entries still go through STS
// verification before they are stored.
func LoadSeedFile(path string) ([]SeedProfile, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load seed file %s: %w", path, err)
	}

	var profiles []SeedProfile
	for _, section := range cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profiles = append(profiles, SeedProfile{
			Principal:       section.Name(),
			AccessKeyID:     section.Key("aws_access_key_id").String(),
			SecretAccessKey: section.Key("aws_secret_access_key").String(),
			Region:          section.Key("region").String(),
		})
	}
	return profiles, nil
}
