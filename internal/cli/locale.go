package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/spf13/pflag"
)

// localeValue is a flag accepting "de" or "en".
type localeValue struct {
	name   string
	format domain.NumberFormat
}

var _ pflag.Value = (*localeValue)(nil)

func newLocaleValue(name string) *localeValue {
	v := &localeValue{}
	if err := v.Set(name); err != nil {
		_ = v.Set("de")
	}
	return v
}

func (v *localeValue) String() string { return v.name }

func (v *localeValue) Set(s string) error {
	f, ok := domain.NumberFormatFor(s)
	if !ok {
		return fmt.Errorf("unsupported locale %q (use de or en)", s)
	}
	v.name = strings.ToLower(strings.TrimSpace(s))
	v.format = f
	return nil
}

func (v *localeValue) Type() string { return "locale" }

func (v *localeValue) Format() domain.NumberFormat { return v.format }
