package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/spf13/pflag"
)

// ConfigFlag is read by main before the command tree is built.
const ConfigFlag = "config"

// ConfigPath pre-parses args for --config, ignoring every other flag.
func ConfigPath(args []string) string {
	fs := pflag.NewFlagSet("protrack", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(discard{})
	path := fs.String(ConfigFlag, "", "")
	_ = fs.Parse(args)
	return *path
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// enumFlag is a string flag restricted to a fixed set of values.
type enumFlag[T ~string] struct {
	value   *T
	allowed []T
}

func newEnumFlag[T ~string](value *T, allowed []T) *enumFlag[T] {
	return &enumFlag[T]{value: value, allowed: allowed}
}

var _ pflag.Value = (*enumFlag[domain.Role])(nil)

func (f *enumFlag[T]) String() string { return string(*f.value) }

func (f *enumFlag[T]) Type() string { return "string" }

// Set matches ignoring case and stores the canonical spelling.
func (f *enumFlag[T]) Set(s string) error {
	for _, v := range f.allowed {
		if strings.EqualFold(string(v), s) {
			*f.value = v
			return nil
		}
	}
	names := make([]string, len(f.allowed))
	for i, v := range f.allowed {
		names[i] = fmt.Sprintf("%q", v)
	}
	return fmt.Errorf("must be one of %s", strings.Join(names, ", "))
}

// dateFlag parses YYYY-MM-DD into a UTC midnight.
type dateFlag struct {
	value *time.Time
}

func (f dateFlag) String() string {
	if f.value == nil || f.value.IsZero() {
		return ""
	}
	return f.value.Format(domain.DateLayout)
}

func (f dateFlag) Type() string { return "date" }

func (f dateFlag) Set(s string) error {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	*f.value = t
	return nil
}
