package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/provider"
)

type vendorsFile struct {
	Vendors []provider.Config `yaml:"vendors"`
}

// LoadVendors — описания вендоров из YAML; ${VAR} подставляются из окружения (секреты не хранятся в файле).
func LoadVendors(path string) ([]provider.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vendors file: %w", err)
	}
	return ParseVendors(raw)
}

// ParseVendors — разбор содержимого файла вендоров. Неизвестные поля - ошибка.
func ParseVendors(raw []byte) ([]provider.Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(raw)))))
	dec.KnownFields(true)

	var f vendorsFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode vendors file: %w", err)
	}
	if len(f.Vendors) == 0 {
		return nil, errors.New("vendors file: no vendors configured")
	}

	seen := make(map[string]struct{}, len(f.Vendors))
	for i := range f.Vendors {
		v := &f.Vendors[i]
		// id из запроса приводится к нижнему регистру, здесь так же
		v.ID = domain.VendorID(strings.ToLower(strings.TrimSpace(string(v.ID))))
		v.Kind = provider.Kind(strings.ToLower(strings.TrimSpace(string(v.Kind))))
		if v.ID == "" {
			return nil, fmt.Errorf("vendors file: entry %d has no id", i)
		}
		if _, ok := seen[string(v.ID)]; ok {
			return nil, fmt.Errorf("vendors file: duplicate vendor %q", v.ID)
		}
		seen[string(v.ID)] = struct{}{}
		if v.Kind == "" {
			// id совпадает с протоколом: "mouser", "digikey", "arrow"
			v.Kind = provider.Kind(v.ID)
		}
	}
	return f.Vendors, nil
}
