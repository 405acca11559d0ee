package server

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/agenthands/cograph/internal/config"
	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/errors"
)

// GraphRequest carries optional overrides of the configured default
// parameters, from either the query string or a JSON body.
type GraphRequest struct {
	YearMin             *int     `form:"year_min" json:"year_min"`
	YearMax             *int     `form:"year_max" json:"year_max"`
	MinRSTheoretical    *float64 `form:"min_rs_theoretical" json:"min_rs_theoretical" binding:"omitempty,gte=0"`
	MinRSMethodological *float64 `form:"min_rs_methodological" json:"min_rs_methodological" binding:"omitempty,gte=0"`
	MinRSCross          *float64 `form:"min_rs_cross" json:"min_rs_cross" binding:"omitempty,gte=0"`
	TopN                *int     `form:"top_n" json:"top_n" binding:"omitempty,gte=1"`
	Types               []string `form:"types" json:"types" binding:"omitempty,categories"`
	Window              *string  `form:"window" json:"window"`
	Tau                 *float64 `form:"tau" json:"tau" binding:"omitempty,gte=0.1,lte=0.9"`
	K                   *int     `form:"k" json:"k" binding:"omitempty,gte=1,lte=100"`
	Communities         *string  `form:"communities" json:"communities" binding:"omitempty,oneof=lpa components none"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("categories", validateCategories)
	}
}

// validateCategories accepts repeated values and comma-separated lists.
func validateCategories(fl validator.FieldLevel) bool {
	names, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	_, err := parseCategories(names)
	return err == nil
}

func parseCategories(names []string) ([]model.Category, error) {
	var out []model.Category
	seen := make(map[model.Category]bool)
	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			c, err := model.ParseCategory(name)
			if err != nil {
				return nil, err
			}
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out, nil
}

// Apply overlays the request on defaults and validates the merged bundle.
func (r GraphRequest) Apply(defaults model.Params) (model.Params, error) {
	p := defaults
	p.Categories = append([]model.Category(nil), defaults.Categories...)

	if r.YearMin != nil {
		p.YearMin = *r.YearMin
	}
	if r.YearMax != nil {
		p.YearMax = *r.YearMax
	}
	if r.MinRSTheoretical != nil {
		p.MinRS[model.Theoretical] = *r.MinRSTheoretical
	}
	if r.MinRSMethodological != nil {
		p.MinRS[model.Methodological] = *r.MinRSMethodological
	}
	if r.MinRSCross != nil {
		p.MinRS[model.Cross] = *r.MinRSCross
	}
	if r.TopN != nil {
		p.TopN = *r.TopN
	}
	// an explicit empty list selects no category
	if r.Types != nil {
		cats, err := parseCategories(r.Types)
		if err != nil {
			return model.Params{}, errors.Wrap(errors.ErrInvalidParams, err.Error())
		}
		p.Categories = cats
	}
	if r.Window != nil {
		p.Window = strings.TrimSpace(*r.Window)
	}
	if r.Tau != nil {
		p.Tau = *r.Tau
	}
	if r.Communities != nil {
		p.Communities = *r.Communities
	}
	if r.K != nil && (*r.K < 1 || *r.K > 100) {
		return model.Params{}, errors.Wrapf(errors.ErrInvalidParams, "k %d outside [1, 100]", *r.K)
	}

	if err := config.ValidateParams(p); err != nil {
		return model.Params{}, err
	}
	return p, nil
}
