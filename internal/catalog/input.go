package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"medicore-be/internal/utils"
)

// LooseFloat accepts a JSON number or string. Anything unparsable becomes 0.
type LooseFloat float64

func (f *LooseFloat) UnmarshalJSON(b []byte) error {
	*f = LooseFloat(utils.ParseFloatOrZero(unquote(b)))
	return nil
}

// LooseInt accepts a JSON number or string. Fractions truncate, anything unparsable becomes 0.
type LooseInt int

func (n *LooseInt) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if v, err := strconv.Atoi(s); err == nil {
		*n = LooseInt(v)
		return nil
	}
	*n = LooseInt(int(utils.ParseFloatOrZero(s)))
	return nil
}

// StringList accepts either a JSON array of strings or one comma separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = cleanList(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = cleanList(strings.Split(s, ","))
	return nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

func unquote(b []byte) string {
	s := strings.TrimSpace(string(b))
	if uq, err := strconv.Unquote(s); err == nil {
		return uq
	}
	return s
}

// MedicineInput is the admin create/update body.
type MedicineInput struct {
	Name                 string     `json:"name" validate:"required,max=255"`
	Brand                string     `json:"brand" validate:"max=255"`
	Category             string     `json:"category" validate:"required,max=100"`
	Subcategory          string     `json:"subcategory" validate:"max=100"`
	Price                LooseFloat `json:"price"`
	Stock                LooseInt   `json:"stock"`
	PrescriptionRequired bool       `json:"is_prescription_required"`
	ExpiryDate           string     `json:"expiry_date"`
	Supplier             string     `json:"supplier" validate:"max=255"`
	Description          string     `json:"description"`
	Dosage               string     `json:"dosage"`
	SideEffects          StringList `json:"side_effects"`
	Interactions         StringList `json:"interactions"`
	ImageURL             string     `json:"image_url" validate:"omitempty,max=2048"`
}

// Normalize converts the loose body into WriteParams.
func (in MedicineInput) Normalize() (WriteParams, error) {
	p := WriteParams{
		Name:                 strings.TrimSpace(in.Name),
		Brand:                in.Brand,
		Category:             in.Category,
		Subcategory:          in.Subcategory,
		Price:                utils.RoundMoney(float64(in.Price)),
		Stock:                int(in.Stock),
		PrescriptionRequired: in.PrescriptionRequired,
		Supplier:             in.Supplier,
		Description:          in.Description,
		Dosage:               in.Dosage,
		SideEffects:          []string(in.SideEffects),
		Interactions:         []string(in.Interactions),
		ImageURL:             in.ImageURL,
	}
	if p.SideEffects == nil {
		p.SideEffects = []string{}
	}
	if p.Interactions == nil {
		p.Interactions = []string{}
	}

	if p.Price < 0 || p.Stock < 0 {
		return WriteParams{}, ErrNegativeValue
	}

	if d := strings.TrimSpace(in.ExpiryDate); d != "" {
		// Accept full timestamps from clients that send what they received.
		if len(d) > len(DateLayout) {
			d = d[:len(DateLayout)]
		}
		t, err := time.Parse(DateLayout, d)
		if err != nil {
			return WriteParams{}, ErrInvalidExpiryDate
		}
		p.ExpiryDate = &t
	}

	return p, nil
}
