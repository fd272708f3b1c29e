package linter

import (
	"fmt"
	"slices"
	"sort"
)

// RulesetAll names the implicit ruleset containing every registered rule.
const RulesetAll = "all"

// Registry holds registered rules
type Registry struct {
	rules    map[string]Rule
	rulesets map[string][]string // ruleset name -> rule IDs
}

// NewRegistry creates a new rule registry
func NewRegistry() *Registry {
	return &Registry{
		rules:    make(map[string]Rule),
		rulesets: make(map[string][]string),
	}
}

// Register registers a rule, replacing any rule with the same ID
func (r *Registry) Register(rule Rule) {
	r.rules[rule.ID()] = rule
}

// RegisterRuleset registers a named set of rules. Every rule must already be registered.
func (r *Registry) RegisterRuleset(name string, ruleIDs []string) error {
	if name == RulesetAll {
		return fmt.Errorf("ruleset %q is reserved", name)
	}
	if _, exists := r.rulesets[name]; exists {
		return fmt.Errorf("ruleset %q already registered", name)
	}

	for _, id := range ruleIDs {
		if _, exists := r.rules[id]; !exists {
			return fmt.Errorf("rule %q in ruleset %q not found", id, name)
		}
	}

	r.rulesets[name] = slices.Clone(ruleIDs)
	return nil
}

// GetRule returns a rule by ID
func (r *Registry) GetRule(id string) (Rule, bool) {
	rule, ok := r.rules[id]
	return rule, ok
}

// GetRuleset returns rule IDs for a ruleset
func (r *Registry) GetRuleset(name string) ([]string, bool) {
	if name == RulesetAll {
		return r.AllRuleIDs(), true
	}
	ids, ok := r.rulesets[name]
	return ids, ok
}

// AllRules returns all registered rules ordered by ID
func (r *Registry) AllRules() []Rule {
	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID() < rules[j].ID()
	})
	return rules
}

// AllRuleIDs returns all registered rule IDs
func (r *Registry) AllRuleIDs() []string {
	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AllRulesets returns all registered ruleset names, including "all"
func (r *Registry) AllRulesets() []string {
	names := make([]string, 0, len(r.rulesets)+1)
	names = append(names, RulesetAll)
	for name := range r.rulesets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
