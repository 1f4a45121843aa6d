package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AgentsPath is the agent specification file relative to a workspace root.
var AgentsPath = filepath.Join("config", "agents.toml")

// DefaultAgentPriority applies when an agent omits the priority field.
const DefaultAgentPriority = "medium"

// AgentSpec describes one declared agent from agents.toml.
type AgentSpec struct {
	Name         string            `json:"name"`
	Domain       string            `json:"domain"`
	Priority     string            `json:"priority"`
	Capabilities []string          `json:"capabilities"`
	Dependencies map[string]string `json:"dependencies"`
	Objectives   []string          `json:"objectives"`
}

type rawAgentsFile struct {
	Agents []rawAgent `toml:"agents"`
}

type rawAgent struct {
	Name         string `toml:"name"`
	Domain       string `toml:"domain"`
	Priority     string `toml:"priority"`
	Capabilities struct {
		Primary []string `toml:"primary"`
	} `toml:"capabilities"`
	Dependencies map[string]string `toml:"dependencies"`
	Objectives   []struct {
		Description string `toml:"description"`
	} `toml:"objectives"`
}

// LoadAgents reads the agent specifications at path.
func LoadAgents(path string) ([]AgentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agents file: %w", err)
	}
	specs, err := ParseAgents(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return specs, nil
}

// ParseAgents decodes agent specification TOML.
func ParseAgents(data []byte) ([]AgentSpec, error) {
	var raw rawAgentsFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode agents TOML: %w", err)
	}

	specs := make([]AgentSpec, 0, len(raw.Agents))
	for _, a := range raw.Agents {
		spec := AgentSpec{
			Name:         a.Name,
			Domain:       a.Domain,
			Priority:     a.Priority,
			Capabilities: a.Capabilities.Primary,
			Dependencies: a.Dependencies,
			Objectives:   make([]string, 0, len(a.Objectives)),
		}
		if spec.Priority == "" {
			spec.Priority = DefaultAgentPriority
		}
		if spec.Capabilities == nil {
			spec.Capabilities = []string{}
		}
		if spec.Dependencies == nil {
			spec.Dependencies = map[string]string{}
		}
		for _, obj := range a.Objectives {
			spec.Objectives = append(spec.Objectives, obj.Description)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
