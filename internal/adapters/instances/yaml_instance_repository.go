// Package instances loads problem instances from YAML files.
package instances

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"roster-routing-service/internal/domain"
)

const (
	KindSchedule = "schedule"
	KindRouting  = "routing"
)

// YamlInstanceRepository implements the InstanceRepository port over a
// directory of <name>.yaml files.
type YamlInstanceRepository struct {
	Dir string
}

func NewYamlInstanceRepository(dir string) *YamlInstanceRepository {
	return &YamlInstanceRepository{Dir: dir}
}

func (r *YamlInstanceRepository) LoadSchedule(ctx context.Context, name string) (*domain.ScheduleInstance, error) {
	path, err := r.resolve(name)
	if err != nil {
		return nil, fmt.Errorf("load schedule instance: %w", err)
	}
	in, err := LoadScheduleFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schedule instance %q: %w", name, err)
	}
	return in, nil
}

func (r *YamlInstanceRepository) LoadRouting(ctx context.Context, name string) (*domain.RoutingInstance, error) {
	path, err := r.resolve(name)
	if err != nil {
		return nil, fmt.Errorf("load routing instance: %w", err)
	}
	in, err := LoadRoutingFile(path)
	if err != nil {
		return nil, fmt.Errorf("load routing instance %q: %w", name, err)
	}
	return in, nil
}

// resolve rejects names that would escape the instance directory.
func (r *YamlInstanceRepository) resolve(name string) (string, error) {
	if name == "" {
		return "", errors.New("instance name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("instance name %q must be a bare file name", name)
	}
	return filepath.Join(r.Dir, name+".yaml"), nil
}

type policyEntry struct {
	Shift      int `yaml:"shift"`
	HardMin    int `yaml:"hard_min"`
	SoftMin    int `yaml:"soft_min"`
	MinPenalty int `yaml:"min_penalty"`
	SoftMax    int `yaml:"soft_max"`
	HardMax    int `yaml:"hard_max"`
	MaxPenalty int `yaml:"max_penalty"`
}

func (p policyEntry) policy() domain.BoundPolicy {
	return domain.BoundPolicy{
		HardMin:    p.HardMin,
		SoftMin:    p.SoftMin,
		MinPenalty: p.MinPenalty,
		SoftMax:    p.SoftMax,
		HardMax:    p.HardMax,
		MaxPenalty: p.MaxPenalty,
	}
}

type scheduleFile struct {
	Kind         string  `yaml:"kind"`
	Employees    int     `yaml:"employees"`
	Shifts       int     `yaml:"shifts"`
	Days         int     `yaml:"days"`
	CoverPenalty int     `yaml:"cover_penalty"`
	MinCoverage  [][]int `yaml:"min_coverage"`
	Fixed        []struct {
		Employee int `yaml:"employee"`
		Shift    int `yaml:"shift"`
		Day      int `yaml:"day"`
	} `yaml:"fixed"`
	Requests []struct {
		Employee int `yaml:"employee"`
		Shift    int `yaml:"shift"`
		Day      int `yaml:"day"`
		Weight   int `yaml:"weight"`
	} `yaml:"requests"`
	Sequences   []policyEntry `yaml:"sequences"`
	Sums        []policyEntry `yaml:"sums"`
	Transitions []struct {
		From    int `yaml:"from"`
		To      int `yaml:"to"`
		Penalty int `yaml:"penalty"`
	} `yaml:"transitions"`
}

// LoadScheduleFile parses and validates one scheduling instance. Coverage
// rows in the file list working shifts only; the off shift column is added
// here.
func LoadScheduleFile(path string) (*domain.ScheduleInstance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	var f scheduleFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	if f.Kind != KindSchedule {
		return nil, fmt.Errorf("instance %q has kind %q, want %q", path, f.Kind, KindSchedule)
	}

	in := &domain.ScheduleInstance{
		Employees:    f.Employees,
		Shifts:       f.Shifts,
		Days:         f.Days,
		CoverPenalty: f.CoverPenalty,
		MinCoverage:  make([][]int, 0, len(f.MinCoverage)),
	}
	for d, row := range f.MinCoverage {
		if len(row) != f.Shifts-1 {
			return nil, fmt.Errorf("instance %q: min_coverage[%d] has %d entries, want %d working shifts", path, d, len(row), f.Shifts-1)
		}
		full := make([]int, f.Shifts)
		copy(full[1:], row)
		in.MinCoverage = append(in.MinCoverage, full)
	}
	for _, x := range f.Fixed {
		in.Fixed = append(in.Fixed, domain.FixedAssignment{Employee: x.Employee, Shift: x.Shift, Day: x.Day})
	}
	for _, x := range f.Requests {
		in.Requests = append(in.Requests, domain.ShiftRequest{Employee: x.Employee, Shift: x.Shift, Day: x.Day, Weight: x.Weight})
	}
	for _, x := range f.Sequences {
		in.Sequences = append(in.Sequences, domain.SequencePolicy{Shift: x.Shift, Policy: x.policy()})
	}
	for _, x := range f.Sums {
		in.Sums = append(in.Sums, domain.SumPolicy{Shift: x.Shift, Policy: x.policy()})
	}
	for _, x := range f.Transitions {
		in.Transitions = append(in.Transitions, domain.TransitionPolicy{From: x.From, To: x.To, Penalty: x.Penalty})
	}

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("instance %q: %w", path, err)
	}
	return in, nil
}

type routingFile struct {
	Kind            string  `yaml:"kind"`
	Depot           int     `yaml:"depot"`
	DistanceMeters  [][]int `yaml:"distance_meters"`
	DurationSeconds [][]int `yaml:"duration_seconds"`
	Demands         []int   `yaml:"demands"`
	TimeWindows     []struct {
		Earliest int `yaml:"earliest"`
		Latest   int `yaml:"latest"`
	} `yaml:"time_windows"`
	Vehicles []struct {
		Capacity      int `yaml:"capacity"`
		MaxEndSeconds int `yaml:"max_end_seconds"`
	} `yaml:"vehicles"`
	Pickups []struct {
		Pickup   int `yaml:"pickup"`
		Delivery int `yaml:"delivery"`
	} `yaml:"pickups"`
	SpanCostCoefficient int `yaml:"span_cost_coefficient"`
}

// LoadRoutingFile parses and validates one routing instance.
func LoadRoutingFile(path string) (*domain.RoutingInstance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	var f routingFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	if f.Kind != KindRouting {
		return nil, fmt.Errorf("instance %q has kind %q, want %q", path, f.Kind, KindRouting)
	}

	in := &domain.RoutingInstance{
		Depot:               f.Depot,
		DistanceMeters:      f.DistanceMeters,
		DurationSeconds:     f.DurationSeconds,
		Demands:             f.Demands,
		SpanCostCoefficient: f.SpanCostCoefficient,
	}
	for _, w := range f.TimeWindows {
		in.Windows = append(in.Windows, domain.TimeWindow{Earliest: w.Earliest, Latest: w.Latest})
	}
	for _, v := range f.Vehicles {
		in.Vehicles = append(in.Vehicles, domain.Vehicle{Capacity: v.Capacity, MaxEndSeconds: v.MaxEndSeconds})
	}
	for _, p := range f.Pickups {
		in.Pickups = append(in.Pickups, domain.PickupDelivery{Pickup: p.Pickup, Delivery: p.Delivery})
	}

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("instance %q: %w", path, err)
	}
	return in, nil
}

// KindOf peeks at a file's kind field without fully decoding it.
func KindOf(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", path, err)
	}
	var head struct {
		Kind string `yaml:"kind"`
	}
	if err := yaml.Unmarshal(raw, &head); err != nil {
		return "", fmt.Errorf("parse %q: %w", path, err)
	}
	if head.Kind == "" {
		return "", fmt.Errorf("instance %q has no kind field", path)
	}
	return head.Kind, nil
}
