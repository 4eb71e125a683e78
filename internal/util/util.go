package util

import "strings"

type multipleError struct {
	errs []error
}

// NewMultipleError combines the non-nil errors into one error, or returns nil
// if there are none. The result matches any of its errors under errors.Is.
func NewMultipleError(errs ...error) error {
	var cleanedErrs []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		cleanedErrs = append(cleanedErrs, err)
	}
	switch len(cleanedErrs) {
	case 0:
		return nil
	case 1:
		return cleanedErrs[0]
	}
	return multipleError{errs: cleanedErrs}
}

func (err multipleError) Error() string {
	var b strings.Builder
	b.WriteString("multiple errors encountered:")
	for _, e := range err.errs {
		b.WriteString("\n - ")
		b.WriteString(e.Error())
	}
	return b.String()
}

func (err multipleError) Unwrap() []error {
	return err.errs
}
