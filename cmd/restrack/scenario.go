package main

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/resource-core/errors"
	"github.com/wippyai/resource-core/resource"
)

// Scenario describes a resource graph and a sequence of operations to run
// against it.
type Scenario struct {
	Name      string         `yaml:"name"`
	Resources []ResourceSpec `yaml:"resources"`
	Groups    []GroupSpec    `yaml:"groups"`
	Steps     []Step         `yaml:"steps"`
}

// ResourceSpec declares a native resource and the resources it depends on.
type ResourceSpec struct {
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind"`
	Display   string   `yaml:"display"`
	DependsOn []string `yaml:"depends_on"`
}

// GroupSpec declares a resource group. Members may name resources or groups
// declared earlier.
type GroupSpec struct {
	Name     string   `yaml:"name"`
	Display  string   `yaml:"display"`
	Members  []string `yaml:"members"`
	Capacity int      `yaml:"capacity"`
	Combined bool     `yaml:"combined"`
	Cascade  bool     `yaml:"cascade"`
	Sealed   bool     `yaml:"sealed"`
}

// Step actions.
const (
	ActionDispose      = "dispose"
	ActionDisposeGroup = "dispose-group"
	ActionAdd          = "add"
	ActionSeal         = "seal"
	ActionRename       = "rename"
	ActionCheck        = "check"
)

// Step is one operation. Expect names the error kind the operation must fail
// with; an empty Expect means it must succeed.
type Step struct {
	Cascade    *bool  `yaml:"cascade"`
	Disposed   *bool  `yaml:"disposed"`
	Dependents *int   `yaml:"dependents"`
	Action     string `yaml:"action"`
	Target     string `yaml:"target"`
	Group      string `yaml:"group"`
	Name       string `yaml:"name"`
	Expect     string `yaml:"expect"`
}

var knownKinds = map[errors.Kind]bool{
	errors.KindInvalidDefault:         true,
	errors.KindDisposed:               true,
	errors.KindSealed:                 true,
	errors.KindPrematureDisposal:      true,
	errors.KindEnumerationInvalidated: true,
	errors.KindOutOfBounds:            true,
	errors.KindDuplicateKey:           true,
	errors.KindInvalidInput:           true,
	errors.KindNotFound:               true,
	errors.KindTypeMismatch:           true,
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.ParseFailed("scenario", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that every name is unique and every reference points at
// something declared before it.
func (s *Scenario) Validate() error {
	declared := make(map[string]bool)
	groups := make(map[string]bool)

	declare := func(name string) error {
		if name == "" {
			return errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Detail("every resource and group needs a name").
				Build()
		}
		if declared[name] {
			return errors.DuplicateKey(errors.PhaseParse, name)
		}
		declared[name] = true
		return nil
	}
	resolve := func(name string) error {
		if !declared[name] {
			return errors.NotFound(errors.PhaseParse, "resource", name)
		}
		return nil
	}

	for _, r := range s.Resources {
		if r.Kind == "" {
			return errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Path("resources", r.Name).
				Detail("kind is required").
				Build()
		}
		for _, dep := range r.DependsOn {
			if err := resolve(dep); err != nil {
				return err
			}
		}
		if err := declare(r.Name); err != nil {
			return err
		}
	}

	for _, g := range s.Groups {
		if g.Capacity < 0 {
			return errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Path("groups", g.Name).
				Detail("capacity must not be negative").
				Build()
		}
		for _, m := range g.Members {
			if err := resolve(m); err != nil {
				return err
			}
		}
		if err := declare(g.Name); err != nil {
			return err
		}
		groups[g.Name] = true
	}

	for i, st := range s.Steps {
		if st.Expect != "" && !knownKinds[errors.Kind(st.Expect)] {
			return errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Path("steps", st.Action).
				Detail("step %d expects unknown error kind %q", i, st.Expect).
				Build()
		}
		switch st.Action {
		case ActionDispose, ActionCheck, ActionRename:
			if err := resolve(st.Target); err != nil {
				return err
			}
		case ActionDisposeGroup, ActionSeal:
			if !groups[st.Group] {
				return errors.NotFound(errors.PhaseParse, "group", st.Group)
			}
		case ActionAdd:
			if !groups[st.Group] {
				return errors.NotFound(errors.PhaseParse, "group", st.Group)
			}
			if err := resolve(st.Target); err != nil {
				return err
			}
		default:
			return errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Path("steps").
				Detail("step %d has unknown action %q", i, st.Action).
				Build()
		}
	}
	return nil
}

var kinds = struct {
	byName map[string]resource.TypeTag
	sync.Mutex
}{byName: make(map[string]resource.TypeTag)}

// kindFor returns the process-wide tag for a scenario kind name, registering
// it on first use.
func kindFor(name string) resource.TypeTag {
	kinds.Lock()
	defer kinds.Unlock()

	if tag, ok := kinds.byName[name]; ok {
		return tag
	}
	tag := resource.RegisterKind(name, "Unnamed "+name)
	kinds.byName[name] = tag
	return tag
}
