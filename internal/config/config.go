// Package config loads the portal's display configuration: the strings shown
// to citizens and operators that vary per deployment (agency name, country,
// social links). Values come from an optional YAML file with environment
// variable overrides on top.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
)

type Portal struct {
	AgencyName   string `yaml:"agency_name" json:"agency_name"`
	CountryName  string `yaml:"country_name" json:"country_name"`
	TwitterLink  string `yaml:"twitter_link" json:"twitter_link"`
	FacebookLink string `yaml:"facebook_link" json:"facebook_link"`
}

func defaults() Portal {
	return Portal{
		AgencyName:   "Police Service",
		CountryName:  "Ghana",
		TwitterLink:  "#",
		FacebookLink: "#",
	}
}

// Load reads the portal config from path. A missing file is not an error;
// defaults and env vars still apply.
func Load(path string) (Portal, error) {
	p := defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// keep defaults
	case err != nil:
		return p, err
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return p, err
		}
	}

	overlayEnv(&p.AgencyName, "AGENCY_NAME")
	overlayEnv(&p.CountryName, "COUNTRY_NAME")
	overlayEnv(&p.TwitterLink, "TWITTER_LINK")
	overlayEnv(&p.FacebookLink, "FACEBOOK_LINK")

	return p, nil
}

func overlayEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
