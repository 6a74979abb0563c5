package policy

import (
	"fmt"
	"regexp"

	"typeonly/internal/core/errors"
)

// DefaultFilePattern matches paths ending in .types.ts or .types.tsx.
const DefaultFilePattern = `\.types\.tsx?$`

var defaultFileRegexp = regexp.MustCompile(DefaultFilePattern)

// FilePattern is either an already-compiled expression or the source text of
// one. Source text is compiled once, by NewConfig.
type FilePattern interface {
	filePattern()
}

// CompiledPattern is used verbatim.
type CompiledPattern struct {
	*regexp.Regexp
}

func (CompiledPattern) filePattern() {}

// PatternSource is compiled with no special flags.
type PatternSource string

func (PatternSource) filePattern() {}

// Config is immutable once built.
type Config struct {
	banEnums    bool
	filePattern *regexp.Regexp
}

// NewConfig resolves the file pattern. A nil pattern selects
// DefaultFilePattern; a PatternSource that does not compile is a
// CodeConfigError.
func NewConfig(banEnums bool, pattern FilePattern) (*Config, error) {
	re, err := compileFilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &Config{banEnums: banEnums, filePattern: re}, nil
}

// DefaultConfig is banEnums=false with the default file pattern.
func DefaultConfig() *Config {
	return &Config{filePattern: defaultFileRegexp}
}

func compileFilePattern(pattern FilePattern) (*regexp.Regexp, error) {
	switch p := pattern.(type) {
	case nil:
		return defaultFileRegexp, nil
	case CompiledPattern:
		if p.Regexp == nil {
			return defaultFileRegexp, nil
		}
		return p.Regexp, nil
	case *CompiledPattern:
		if p == nil || p.Regexp == nil {
			return defaultFileRegexp, nil
		}
		return p.Regexp, nil
	case PatternSource:
		re, err := regexp.Compile(string(p))
		if err != nil {
			de := &errors.DomainError{
				Code:    errors.CodeConfigError,
				Message: fmt.Sprintf("invalid file pattern %q", string(p)),
				Err:     err,
			}
			return nil, de.WithContext(errors.CtxSetting, "file_pattern")
		}
		return re, nil
	default:
		return nil, errors.New(errors.CodeConfigError, fmt.Sprintf("unsupported file pattern type %T", pattern))
	}
}

func (c *Config) BanEnums() bool { return c.banEnums }

// FilePattern returns the expression used by InScope.
func (c *Config) FilePattern() *regexp.Regexp { return c.filePattern }

// InScope reports whether the policy applies to filePath. The path is tested
// as supplied, without normalization.
func (c *Config) InScope(filePath string) bool {
	return c.filePattern.MatchString(filePath)
}
