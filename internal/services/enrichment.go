package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"leadflow/internal/models"
)

var ErrValidation = errors.New("validation failed")

// FormState says which parts of the RMA enrichment form are visible or
// required for the values currently entered.
type FormState struct {
	ShowProducts      bool `json:"show_products"`
	ShowIncumbentName bool `json:"show_incumbent_name"`
	ContactRequired   bool `json:"contact_required"`
}

func FormRules(d models.RMAData) FormState {
	return FormState{
		ShowProducts:      d.IsExistingClient == models.Yes,
		ShowIncumbentName: d.AlreadyAllocatedToRMA == models.Yes,
		ContactRequired:   d.IsExistingClient != models.No,
	}
}

// DefaultRMAData is the blank form shown for a lead without RMA data.
func DefaultRMAData() models.RMAData {
	return models.RMAData{
		IsExistingClient:      models.Pending,
		Products:              []string{},
		AlreadyAllocatedToRMA: models.No,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateEnrichment checks a submitted form. Contact fields are required
// unless the employer is not an existing client.
func ValidateEnrichment(d models.RMAData) error {
	var problems []string
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	if d.ContactEmail != "" {
		if err := validate.Var(d.ContactEmail, "email"); err != nil {
			problems = append(problems, "contact_email is not a valid email")
		}
	}
	for _, p := range d.Products {
		if !isKnownProduct(p) {
			problems = append(problems, fmt.Sprintf("unknown product %q", p))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// NormalizeProducts treats the product list as a set: trimmed, unique, sorted.
func NormalizeProducts(products []string) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func isKnownProduct(p string) bool {
	for _, known := range models.RMAProducts {
		if p == known {
			return true
		}
	}
	return false
}
