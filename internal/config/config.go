// YAML config loader with CUE validation integration
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"infracore-tile/internal/telemetry"
)

//go:embed default.yaml
var defaultConfig []byte

//go:embed tile.cue
var defaultSchema []byte

const (
	defaultFrameInterval  = 150 * time.Millisecond
	defaultMetricInterval = 1200 * time.Millisecond
	dashboardSvcInterval  = 2500 * time.Millisecond
	gridSvcInterval       = 2000 * time.Millisecond
)

// Transition is one probabilistic status flip applied on every metric tick.
type Transition struct {
	To          string  `yaml:"to"`
	Probability float64 `yaml:"probability"`
}

// Metrics configures the load simulator.
type Metrics struct {
	Interval     time.Duration `yaml:"interval"`
	CPUSpread    float64       `yaml:"cpu_spread"`
	MemorySpread float64       `yaml:"memory_spread"`
	NodesJitter  int           `yaml:"nodes_jitter"`
	NodesMin     int           `yaml:"nodes_min"`
	NodesMax     int           `yaml:"nodes_max"`
	Transitions  []Transition  `yaml:"transitions"`
}

// Service declares one mock microservice.
type Service struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Icon   string `yaml:"icon"`
	Status string `yaml:"status"`
}

// Services configures the service health simulator.
type Services struct {
	Interval          time.Duration `yaml:"interval"`
	ChangeProbability *float64      `yaml:"change_probability"`
	Candidates        []string      `yaml:"candidates"`
	Frozen            []string      `yaml:"frozen"`
	Entities          []Service     `yaml:"entities"`
}

// Header holds the static branding drawn at the top of the tile.
type Header struct {
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
	Version string `yaml:"version"`
}

// Footer holds the static figures drawn at the bottom of the tile.
type Footer struct {
	State   string `yaml:"state"`
	Region  string `yaml:"region"`
	Latency string `yaml:"latency"`
	Uptime  string `yaml:"uptime"`
	Network string `yaml:"network"`
}

// TileConfig is the root configuration of a tile.
type TileConfig struct {
	Variant       string        `yaml:"variant"`
	Seed          int64         `yaml:"seed"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	Metrics       Metrics       `yaml:"metrics"`
	Services      Services      `yaml:"services"`
	Header        Header        `yaml:"header"`
	Footer        Footer        `yaml:"footer"`
}

// Option adjusts a decoded config before defaults are applied.
type Option func(*TileConfig)

// WithVariant overrides the configured variant. Empty keeps the file's value.
func WithVariant(v string) Option {
	return func(c *TileConfig) {
		if v != "" {
			c.Variant = v
		}
	}
}

// WithSeed overrides the configured random seed.
func WithSeed(seed int64) Option {
	return func(c *TileConfig) { c.Seed = seed }
}

// Load loads YAML config and validates it against a CUE schema. Empty paths
// select the embedded defaults.
func Load(configPath, cueSchemaPath string, opts ...Option) (*TileConfig, error) {
	data := defaultConfig
	if configPath != "" {
		b, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read YAML config: %w", err)
		}
		data = b
	}
	schema := defaultSchema
	if cueSchemaPath != "" {
		b, err := os.ReadFile(cueSchemaPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read CUE schema: %w", err)
		}
		schema = b
	}
	return Parse(data, schema, opts...)
}

// Parse validates data against schema and decodes it into a normalized config.
func Parse(data, schema []byte, opts ...Option) (*TileConfig, error) {
	if err := ValidateWithCue(data, schema); err != nil {
		return nil, err
	}

	var cfg TileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal YAML config: %w", err)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Normalize()
	if err := cfg.checkServiceIDs(); err != nil {
		return nil, err
	}

	slog.Debug("loaded configuration", "variant", cfg.Variant, "seed", cfg.Seed, "services", len(cfg.Services.Entities))

	return &cfg, nil
}

// Default returns the embedded configuration.
func Default(opts ...Option) *TileConfig {
	cfg, err := Parse(defaultConfig, defaultSchema, opts...)
	if err != nil {
		panic(fmt.Sprintf("embedded config invalid: %v", err))
	}
	return cfg
}

// Normalize fills unset fields with the defaults of the selected variant and
// clamps out-of-range values.
func (c *TileConfig) Normalize() {
	v := c.TileVariant()
	c.Variant = string(v)
	if c.FrameInterval <= 0 {
		c.FrameInterval = defaultFrameInterval
	}

	dm := telemetry.DefaultMetricParams()
	m := &c.Metrics
	if m.Interval <= 0 {
		m.Interval = defaultMetricInterval
	}
	if m.CPUSpread <= 0 {
		m.CPUSpread = dm.CPUSpread
	}
	if m.MemorySpread <= 0 {
		m.MemorySpread = dm.MemorySpread
	}
	if m.NodesJitter < 0 {
		m.NodesJitter = 0
	}
	if m.NodesMin <= 0 {
		m.NodesMin = dm.NodesMin
	}
	if m.NodesMax < m.NodesMin {
		m.NodesMax = max(dm.NodesMax, m.NodesMin)
	}
	if m.Transitions == nil {
		for _, tr := range dm.Transitions {
			m.Transitions = append(m.Transitions, Transition{To: string(tr.To), Probability: tr.Probability})
		}
	}
	for i := range m.Transitions {
		m.Transitions[i].Probability = clamp01(m.Transitions[i].Probability)
	}

	preset := telemetry.PresetServicePolicy(v)
	s := &c.Services
	if s.Interval <= 0 {
		s.Interval = dashboardSvcInterval
		if v == telemetry.VariantGrid {
			s.Interval = gridSvcInterval
		}
	}
	if s.ChangeProbability == nil {
		p := preset.ChangeProbability
		s.ChangeProbability = &p
	} else {
		p := clamp01(*s.ChangeProbability)
		s.ChangeProbability = &p
	}
	if len(s.Candidates) == 0 {
		s.Candidates = statusStrings(preset.Candidates)
	}
	if s.Frozen == nil {
		s.Frozen = statusStrings(preset.Frozen)
	}
	if len(s.Entities) == 0 {
		for _, e := range telemetry.PresetServices(v) {
			s.Entities = append(s.Entities, Service{ID: e.ID, Name: e.Name, Icon: e.Icon, Status: string(e.Status)})
		}
	}
	for i := range s.Entities {
		if s.Entities[i].ID == "" {
			s.Entities[i].ID = uuid.New().String()
		}
		if s.Entities[i].Status == "" {
			s.Entities[i].Status = string(telemetry.ServiceHealthy)
		}
	}

	if c.Header.Title == "" {
		c.Header.Title = "InfraCore"
	}
	if c.Header.Tagline == "" {
		c.Header.Tagline = "DeepDive"
	}
	if c.Header.Version == "" {
		c.Header.Version = "v2.4.0"
	}
	if c.Footer.State == "" {
		c.Footer.State = "Operational"
	}
	if c.Footer.Region == "" {
		c.Footer.Region = "US-East-1"
	}
	if c.Footer.Latency == "" {
		c.Footer.Latency = "24ms"
	}
	if c.Footer.Uptime == "" {
		c.Footer.Uptime = "99.99%"
	}
	if c.Footer.Network == "" {
		c.Footer.Network = "1.2Gb"
	}
}

// TileVariant returns the configured variant, defaulting to the dashboard.
func (c *TileConfig) TileVariant() telemetry.Variant {
	if telemetry.Variant(c.Variant) == telemetry.VariantGrid {
		return telemetry.VariantGrid
	}
	return telemetry.VariantDashboard
}

// MetricParams converts the metrics section for the generator.
func (c *TileConfig) MetricParams() telemetry.MetricParams {
	p := telemetry.MetricParams{
		CPUSpread:    c.Metrics.CPUSpread,
		MemorySpread: c.Metrics.MemorySpread,
		NodesJitter:  c.Metrics.NodesJitter,
		NodesMin:     c.Metrics.NodesMin,
		NodesMax:     c.Metrics.NodesMax,
	}
	for _, tr := range c.Metrics.Transitions {
		p.Transitions = append(p.Transitions, telemetry.Transition{To: telemetry.SystemStatus(tr.To), Probability: tr.Probability})
	}
	return p
}

// ServicePolicy converts the services section for the generator.
func (c *TileConfig) ServicePolicy() telemetry.ServicePolicy {
	p := telemetry.ServicePolicy{}
	if c.Services.ChangeProbability != nil {
		p.ChangeProbability = *c.Services.ChangeProbability
	}
	for _, s := range c.Services.Candidates {
		p.Candidates = append(p.Candidates, telemetry.ServiceStatus(s))
	}
	for _, s := range c.Services.Frozen {
		p.Frozen = append(p.Frozen, telemetry.ServiceStatus(s))
	}
	return p
}

// ServiceEntities returns fresh copies of the configured services.
func (c *TileConfig) ServiceEntities() []telemetry.ServiceEntity {
	out := make([]telemetry.ServiceEntity, 0, len(c.Services.Entities))
	for _, s := range c.Services.Entities {
		out = append(out, telemetry.ServiceEntity{
			ID:     s.ID,
			Name:   s.Name,
			Icon:   s.Icon,
			Status: telemetry.ServiceStatus(s.Status),
		})
	}
	return out
}

// checkServiceIDs rejects entities sharing an id.
func (c *TileConfig) checkServiceIDs() error {
	seen := make(map[string]struct{}, len(c.Services.Entities))
	for _, s := range c.Services.Entities {
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("duplicate service id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func statusStrings(in []telemetry.ServiceStatus) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}
