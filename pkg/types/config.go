package types

import "time"

// APIConfig holds the arXiv API and fetch settings.
type APIConfig struct {
	// BaseURL is the arXiv query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// UserAgent is the User-Agent header sent with API requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent" validate:"required"`

	// MaxResults is the result cap per category query (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"gt=0,lte=30000"`

	// MaxAttempts is the total number of attempts per category (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" mapstructure:"max_attempts" validate:"gt=0"`

	// BaseDelay is the backoff base: attempt n waits BaseDelay*2^n plus jitter (default 5s).
	BaseDelay time.Duration `json:"base_delay" yaml:"base_delay" mapstructure:"base_delay" validate:"gte=0"`

	// MaxJitter bounds the random delay added to each backoff wait (default 1s).
	MaxJitter time.Duration `json:"max_jitter" yaml:"max_jitter" mapstructure:"max_jitter" validate:"gte=0"`

	// RequestDelay is the pause between consecutive category queries (default 3s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay" mapstructure:"request_delay" validate:"gte=0"`

	// WindowDays restricts queries to submissions of the last N days and
	// switches aggregation to the fixed window. Zero selects the latest
	// submission day instead.
	WindowDays int `json:"window_days" yaml:"window_days" mapstructure:"window_days" validate:"gte=0"`
}

// SectionConfig describes one report section: the categories feeding it,
// the macro holding its paper count, and the sentinel name of its region.
type SectionConfig struct {
	// Name is the sentinel name, e.g. "AG" for the "%AG begin" / "%AG end" pair.
	Name string `json:"name" yaml:"name" mapstructure:"name" validate:"required"`

	// Categories lists the arXiv categories in fetch order.
	Categories []string `json:"categories" yaml:"categories" mapstructure:"categories" validate:"required,min=1,dive,required"`

	// CountMacro is the macro receiving the section count, without backslash.
	CountMacro string `json:"count_macro" yaml:"count_macro" mapstructure:"count_macro"`

	// CountPlaceholder is the default value of CountMacro in the template.
	CountPlaceholder string `json:"count_placeholder" yaml:"count_placeholder" mapstructure:"count_placeholder"`

	// Sort merges the categories and orders them by timestamp, newest first.
	// When false the papers keep category order, then API order.
	Sort bool `json:"sort" yaml:"sort" mapstructure:"sort"`
}

// TemplateConfig holds the template location and its literal markers.
type TemplateConfig struct {
	Path string `json:"path" yaml:"path" mapstructure:"path" validate:"required"`

	// DateMacro receives the report date; its template default is empty.
	DateMacro string `json:"date_macro" yaml:"date_macro" mapstructure:"date_macro"`

	// DateFormat is the Go time layout used for dates shown in the document.
	DateFormat string `json:"date_format" yaml:"date_format" mapstructure:"date_format" validate:"required"`

	// CommentPrefix starts every provenance line ("%" for LaTeX).
	CommentPrefix string `json:"comment_prefix" yaml:"comment_prefix" mapstructure:"comment_prefix" validate:"required"`
}

// FormatConfig controls how a paper is rendered into a template fragment.
type FormatConfig struct {
	// Macro is the entry macro name, without backslash (default "arxiv").
	Macro string `json:"macro" yaml:"macro" mapstructure:"macro" validate:"required"`

	// EtAl is appended after the first three authors of longer lists.
	EtAl string `json:"et_al" yaml:"et_al" mapstructure:"et_al"`

	// Escape escapes LaTeX special characters in titles and author names.
	Escape bool `json:"escape" yaml:"escape" mapstructure:"escape"`
}

// OutputConfig holds the output locations.
type OutputConfig struct {
	// Dir is the directory receiving the dated report.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir" validate:"required"`

	// DatedSubdir is an optional Go time layout naming a subdirectory of Dir
	// (e.g. "2006-01"). Empty writes directly into Dir.
	DatedSubdir string `json:"dated_subdir" yaml:"dated_subdir" mapstructure:"dated_subdir"`

	// Latest is the stable path overwritten on every run.
	Latest string `json:"latest" yaml:"latest" mapstructure:"latest" validate:"required"`
}

// Config groups the settings of every stage.
type Config struct {
	API      APIConfig       `json:"api" yaml:"api" mapstructure:"api"`
	Sections []SectionConfig `json:"sections" yaml:"sections" mapstructure:"sections" validate:"required,min=1,dive"`
	Template TemplateConfig  `json:"template" yaml:"template" mapstructure:"template"`
	Format   FormatConfig    `json:"format" yaml:"format" mapstructure:"format"`
	Output   OutputConfig    `json:"output" yaml:"output" mapstructure:"output"`
}

// Categories returns every configured category in section order, without
// duplicates.
func (c Config) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range c.Sections {
		for _, cat := range s.Categories {
			if seen[cat] {
				continue
			}
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}
