package catalog

import (
	"strings"

	"github.com/agentprompts/backend/pkg/config"
	"github.com/agentprompts/backend/pkg/types"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Service holds the immutable catalog snapshot. It is built once at startup
// from config (falling back to the built-in catalog) and injected into
// handlers; nothing mutates it afterwards, so concurrent reads need no
// locking.
type Service struct {
	stacks []*types.Stack
	agents []*types.Agent

	stacksBySlug map[string]*types.Stack
	agentsBySlug map[string]*types.Agent
	stacksByID   map[string]*types.Stack
	agentsByID   map[string]*types.Agent
}

func New(cfg *config.Config, log *zap.SugaredLogger) *Service {
	stacks := cfg.Catalog.Stacks
	agents := cfg.Catalog.Agents
	if len(stacks) == 0 && len(agents) == 0 {
		stacks, agents = defaultCatalog()
		log.Infow("catalog: using built-in content", "stacks", len(stacks), "agents", len(agents))
	} else {
		log.Infow("catalog: loaded from config", "stacks", len(stacks), "agents", len(agents))
	}

	return &Service{
		stacks:       stacks,
		agents:       agents,
		stacksBySlug: lo.KeyBy(stacks, func(s *types.Stack) string { return s.Slug }),
		agentsBySlug: lo.KeyBy(agents, func(a *types.Agent) string { return a.Slug }),
		stacksByID:   lo.KeyBy(stacks, func(s *types.Stack) string { return s.ID }),
		agentsByID:   lo.KeyBy(agents, func(a *types.Agent) string { return a.ID }),
	}
}

// StackFilter narrows stack listings. Zero value matches everything.
type StackFilter struct {
	Query      string
	Technology string
	Premium    *bool
}

// AgentFilter narrows agent listings. Zero value matches everything.
type AgentFilter struct {
	Query    string
	Category string
	Premium  *bool
}

// Stacks returns the stacks matching the filter, in catalog order.
func (s *Service) Stacks(f StackFilter) []*types.Stack {
	return lo.Filter(s.stacks, func(st *types.Stack, _ int) bool {
		if f.Premium != nil && st.Premium != *f.Premium {
			return false
		}
		if f.Technology != "" && !lo.ContainsBy(st.Technologies, func(t string) bool {
			return strings.EqualFold(t, f.Technology)
		}) {
			return false
		}
		if f.Query != "" && !matchQuery(f.Query, st.Name, st.Description, strings.Join(st.Technologies, " ")) {
			return false
		}
		return true
	})
}

// Agents returns the agents matching the filter, in catalog order.
func (s *Service) Agents(f AgentFilter) []*types.Agent {
	return lo.Filter(s.agents, func(a *types.Agent, _ int) bool {
		if f.Premium != nil && a.Premium != *f.Premium {
			return false
		}
		if f.Category != "" && !strings.EqualFold(a.Category, f.Category) {
			return false
		}
		if f.Query != "" && !matchQuery(f.Query, a.Name, a.Description, a.Category) {
			return false
		}
		return true
	})
}

func (s *Service) StackBySlug(slug string) *types.Stack { return s.stacksBySlug[slug] }
func (s *Service) AgentBySlug(slug string) *types.Agent { return s.agentsBySlug[slug] }
func (s *Service) StackByID(id string) *types.Stack     { return s.stacksByID[id] }
func (s *Service) AgentByID(id string) *types.Agent     { return s.agentsByID[id] }

type Stats struct {
	TotalStacks   int      `json:"total_stacks"`
	TotalAgents   int      `json:"total_agents"`
	PremiumAgents int      `json:"premium_agents"`
	Categories    []string `json:"categories"`
	Technologies  []string `json:"technologies"`
}

func (s *Service) Stats() Stats {
	return Stats{
		TotalStacks:   len(s.stacks),
		TotalAgents:   len(s.agents),
		PremiumAgents: lo.CountBy(s.agents, func(a *types.Agent) bool { return a.Premium }),
		Categories:    lo.Uniq(lo.Map(s.agents, func(a *types.Agent, _ int) string { return a.Category })),
		Technologies:  lo.Uniq(lo.FlatMap(s.stacks, func(st *types.Stack, _ int) []string { return st.Technologies })),
	}
}

// RedactAgent returns a copy safe for unentitled callers: premium prompt
// bodies are stripped, everything else is kept.
func RedactAgent(a *types.Agent) *types.Agent {
	if a == nil || !a.Premium {
		return a
	}
	cp := *a
	cp.Prompt = ""
	return &cp
}

func matchQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
