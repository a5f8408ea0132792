// Package geo loads and queries the static province/district/ward dataset
// used to validate delivery addresses.
package geo

import (
	"context"
	"strings"

	"shopkart/internal/model"
)

// Province is one top-level entry of the geo dataset.
type Province struct {
	Name      string     `json:"name"`
	Districts []District `json:"districts"`
}

// District groups the wards of a province subdivision.
type District struct {
	Name  string `json:"name"`
	Wards []Ward `json:"wards"`
}

// Ward is the smallest address unit.
type Ward struct {
	Name string `json:"name"`
}

// Loader loads a geo dataset from a backing source.
type Loader interface {
	Load(ctx context.Context, path string) (*Dataset, error)
}

// Dataset is an immutable, case-insensitive index over the loaded provinces.
// It is read-only after construction and safe for concurrent use.
type Dataset struct {
	provinces []Province
	index     map[string]map[string]map[string]struct{}
}

// NewDataset builds the lookup index over the given provinces.
func NewDataset(provinces []Province) *Dataset {
	index := make(map[string]map[string]map[string]struct{}, len(provinces))
	for _, p := range provinces {
		districts := make(map[string]map[string]struct{}, len(p.Districts))
		for _, d := range p.Districts {
			wards := make(map[string]struct{}, len(d.Wards))
			for _, w := range d.Wards {
				wards[normalize(w.Name)] = struct{}{}
			}
			districts[normalize(d.Name)] = wards
		}
		index[normalize(p.Name)] = districts
	}
	return &Dataset{provinces: provinces, index: index}
}

// Provinces returns the raw dataset, for serving to address forms.
func (d *Dataset) Provinces() []Province {
	return d.provinces
}

// Size returns the number of provinces in the dataset.
func (d *Dataset) Size() int {
	return len(d.provinces)
}

// ValidateAddress checks that the ward exists in the district and the
// district in the province. Returns model.ErrInvalidAddress when any level
// is unknown.
func (d *Dataset) ValidateAddress(province, district, ward string) error {
	districts, ok := d.index[normalize(province)]
	if !ok {
		return model.ErrInvalidAddress
	}
	wards, ok := districts[normalize(district)]
	if !ok {
		return model.ErrInvalidAddress
	}
	if _, ok := wards[normalize(ward)]; !ok {
		return model.ErrInvalidAddress
	}
	return nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
