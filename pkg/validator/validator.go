// Package validator provides struct validation utilities with custom validators.
package validator

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/assureops/api/pkg/domain/asset"
	"github.com/assureops/api/pkg/domain/pending"
)

// Validator wraps the go-playground validator with custom validations.
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single field validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, e := range v {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return sb.String()
}

// New creates a new Validator with custom validators registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Register custom validators for asset domain
	_ = v.RegisterValidation("asset_type", validateAssetType)
	_ = v.RegisterValidation("asset_status", validateAssetStatus)
	_ = v.RegisterValidation("health_status", validateHealthStatus)
	_ = v.RegisterValidation("confirm_status", validateConfirmStatus)
	_ = v.RegisterValidation("discovery_method", validateDiscoveryMethod)
	_ = v.RegisterValidation("dependency_type", validateDependencyType)

	// Register custom validators for pending asset domain
	_ = v.RegisterValidation("evidence_type", validateEvidenceType)

	return &Validator{validate: v}
}

// Validate validates a struct and returns ValidationErrors if validation fails.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return err
	}

	result := make(ValidationErrors, 0, len(validationErrors))
	for _, e := range validationErrors {
		result = append(result, ValidationError{
			Field:   toSnakeCase(e.Field()),
			Message: formatErrorMessage(e),
		})
	}

	return result
}

// validateAssetType validates that a string is a valid AssetType.
func validateAssetType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let 'required' handle empty values
	}
	_, err := asset.ParseAssetType(value)
	return err == nil
}

// validateAssetStatus validates that a string is a valid Status.
func validateAssetStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let 'required' handle empty values
	}
	_, err := asset.ParseStatus(value)
	return err == nil
}

// validateHealthStatus validates that a string is a valid HealthStatus.
func validateHealthStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let 'required' handle empty values
	}
	_, err := asset.ParseHealthStatus(value)
	return err == nil
}

// validateConfirmStatus validates that a string is a valid ConfirmStatus.
func validateConfirmStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let 'required' handle empty values
	}
	_, err := asset.ParseConfirmStatus(value)
	return err == nil
}

// validateDiscoveryMethod validates that a string is a valid DiscoveryMethod.
func validateDiscoveryMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let 'required' handle empty values
	}
	_, err := asset.ParseDiscoveryMethod(value)
	return err == nil
}

// validateDependencyType validates that a string is a valid DependencyType.
func validateDependencyType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let 'required' handle empty values
	}
	_, err := asset.ParseDependencyType(value)
	return err == nil
}

// validateEvidenceType validates that a string is a valid EvidenceType.
func validateEvidenceType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let 'required' handle empty values
	}
	_, err := pending.ParseEvidenceType(value)
	return err == nil
}

// formatErrorMessage converts validation errors to human-readable messages.
func formatErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "ip":
		return "must be a valid IP address"
	case "asset_type":
		return fmt.Sprintf("must be one of: %s", formatAssetTypes())
	case "asset_status":
		return fmt.Sprintf("must be one of: %s", formatStatuses())
	case "health_status":
		return fmt.Sprintf("must be one of: %s", formatHealthStatuses())
	case "confirm_status":
		return fmt.Sprintf("must be one of: %s", formatConfirmStatuses())
	case "discovery_method":
		return fmt.Sprintf("must be one of: %s", formatDiscoveryMethods())
	case "dependency_type":
		return fmt.Sprintf("must be one of: %s", formatDependencyTypes())
	case "evidence_type":
		return fmt.Sprintf("must be one of: %s", formatEvidenceTypes())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", e.Tag())
	}
}

// toSnakeCase converts PascalCase/camelCase to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteByte('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}

// formatAssetTypes returns a comma-separated list of valid asset types.
func formatAssetTypes() string {
	types := asset.AllAssetTypes()
	strs := make([]string, len(types))
	for i, t := range types {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}

// formatStatuses returns a comma-separated list of valid statuses.
func formatStatuses() string {
	statuses := asset.AllStatuses()
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	return strings.Join(strs, ", ")
}

// formatHealthStatuses returns a comma-separated list of valid health statuses.
func formatHealthStatuses() string {
	statuses := asset.AllHealthStatuses()
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	return strings.Join(strs, ", ")
}

// formatConfirmStatuses returns a comma-separated list of valid confirm statuses.
func formatConfirmStatuses() string {
	statuses := asset.AllConfirmStatuses()
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	return strings.Join(strs, ", ")
}

// formatDiscoveryMethods returns a comma-separated list of valid discovery methods.
func formatDiscoveryMethods() string {
	methods := asset.AllDiscoveryMethods()
	strs := make([]string, len(methods))
	for i, m := range methods {
		strs[i] = string(m)
	}
	return strings.Join(strs, ", ")
}

// formatDependencyTypes returns a comma-separated list of valid dependency types.
func formatDependencyTypes() string {
	types := asset.AllDependencyTypes()
	strs := make([]string, len(types))
	for i, t := range types {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}

// formatEvidenceTypes returns a comma-separated list of valid evidence types.
func formatEvidenceTypes() string {
	types := pending.AllEvidenceTypes()
	strs := make([]string, len(types))
	for i, t := range types {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}
