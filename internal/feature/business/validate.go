package business

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"business-directory/internal/domain"
)

var (
	emailRe   = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phoneRe   = regexp.MustCompile(`^\d{10,}$`)
	websiteRe = regexp.MustCompile(`^https?://.+`)
)

const MaxDescriptionLen = 500

type rule struct {
	field    string
	tag      string
	required bool
	value    func(in *domain.BusinessInput) (any, bool)
	messages map[string]string // validator tag -> message
}

// rules run in this order and stop at the first failure, so a given invalid
// input always yields the same message.
var rules = []rule{
	{
		field: "name", tag: "required", required: true,
		value: func(in *domain.BusinessInput) (any, bool) {
			if in.Name == nil {
				return nil, false
			}
			return strings.TrimSpace(*in.Name), true
		},
		messages: map[string]string{"required": "Business name is required"},
	},
	{
		field: "email", tag: "required,bizemail", required: true,
		value: func(in *domain.BusinessInput) (any, bool) { return str(in.Email) },
		messages: map[string]string{
			"required": "Email is required",
			"bizemail": "Please provide a valid email",
		},
	},
	{
		field: "phone", tag: "required,bizphone", required: true,
		value: func(in *domain.BusinessInput) (any, bool) { return str(in.Phone) },
		messages: map[string]string{
			"required": "Phone number is required",
			"bizphone": "Please provide a valid phone number",
		},
	},
	{
		field: "category", tag: "required,category", required: true,
		value: func(in *domain.BusinessInput) (any, bool) { return str(in.Category) },
		messages: map[string]string{
			"required": "Category is required",
			"category": "Please provide a valid category",
		},
	},
	{
		field: "address", tag: "required", required: true,
		value:    func(in *domain.BusinessInput) (any, bool) { return str(in.Address) },
		messages: map[string]string{"required": "Address is required"},
	},
	{
		field: "city", tag: "required", required: true,
		value:    func(in *domain.BusinessInput) (any, bool) { return str(in.City) },
		messages: map[string]string{"required": "City is required"},
	},
	{
		field: "postcode", tag: "required", required: true,
		value:    func(in *domain.BusinessInput) (any, bool) { return str(in.Postcode) },
		messages: map[string]string{"required": "Postcode is required"},
	},
	{
		field: "description", tag: "max=500",
		value:    func(in *domain.BusinessInput) (any, bool) { return str(in.Description) },
		messages: map[string]string{"max": "Description cannot exceed 500 characters"},
	},
	{
		field: "website", tag: "omitempty,bizurl",
		value:    func(in *domain.BusinessInput) (any, bool) { return str(in.Website) },
		messages: map[string]string{"bizurl": "Please provide a valid URL"},
	},
	{
		field: "rating", tag: "min=0,max=5",
		value: func(in *domain.BusinessInput) (any, bool) {
			if in.Rating == nil {
				return nil, false
			}
			return *in.Rating, true
		},
		messages: map[string]string{
			"min": "Rating must be between 0 and 5",
			"max": "Rating must be between 0 and 5",
		},
	},
	{
		field: "reviews", tag: "min=0",
		value: func(in *domain.BusinessInput) (any, bool) {
			if in.Reviews == nil {
				return nil, false
			}
			return *in.Reviews, true
		},
		messages: map[string]string{"min": "Reviews cannot be negative"},
	},
}

func str(p *string) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Validator checks Business inputs before they reach the store.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "bizemail", matches(emailRe))
	mustRegister(v, "bizphone", matches(phoneRe))
	mustRegister(v, "bizurl", matches(websiteRe))
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return domain.IsCategory(fl.Field().String())
	})
	return &Validator{v: v}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool { return re.MatchString(fl.Field().String()) }
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateCreate checks every rule; missing required fields fail.
func (x *Validator) ValidateCreate(in *domain.BusinessInput) error {
	return x.run(in, false)
}

// ValidatePatch checks only the supplied fields, with the same rules as create.
// A required field sent as an explicit null fails as missing.
func (x *Validator) ValidatePatch(in *domain.BusinessInput) error {
	return x.run(in, true)
}

func (x *Validator) run(in *domain.BusinessInput, partial bool) error {
	for _, r := range rules {
		val, ok := r.value(in)
		if !ok {
			// 显式 null 视为清空：必填字段在 patch 中同样报 required
			cleared := r.required && in.IsNull(r.field)
			if (partial && !cleared) || !r.required {
				continue
			}
			val = ""
		}
		if err := x.v.Var(val, r.tag); err != nil {
			return r.fail(err)
		}
	}
	return nil
}

func (r rule) fail(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		// bad tag or unsupported type: a programming error, not user input
		return err
	}
	msg, ok := r.messages[verrs[0].Tag()]
	if !ok {
		msg = "Invalid value"
	}
	return &domain.ValidationError{Resource: "Business", Field: r.field, Message: msg}
}
