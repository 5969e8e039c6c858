// FILE: logforge/src/internal/source/useragent.go
package source

import (
	"fmt"
	"math/rand/v2"
)

const fallbackAgent = "Mozilla/5.0 (Unknown) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124"

// AgentPool holds pre-generated user-agent strings combining a browser
// token with a platform token. Pre-generating a bounded pool keeps per
// line cost down while still looking like a population of real clients.
type AgentPool struct {
	agents []string
	rng    *rand.Rand
}

func NewAgentPool(browsers, systems []string, size int, rng *rand.Rand) *AgentPool {
	p := &AgentPool{rng: rng}
	for i := 0; i < size; i++ {
		p.agents = append(p.agents, generateAgent(browsers, systems, rng))
	}
	return p
}

// Random returns an agent from the pool, generating one on the fly if
// the pool is empty.
func (p *AgentPool) Random() string {
	if len(p.agents) == 0 {
		return fallbackAgent
	}
	return p.agents[p.rng.IntN(len(p.agents))]
}

func generateAgent(browsers, systems []string, rng *rand.Rand) string {
	if len(browsers) == 0 || len(systems) == 0 {
		return fallbackAgent
	}

	browser := browsers[rng.IntN(len(browsers))]
	system := systems[rng.IntN(len(systems))]

	var token string
	switch browser {
	case "Firefox":
		token = fmt.Sprintf("Firefox/%d.0", 70+rng.IntN(31))
	case "Safari":
		token = fmt.Sprintf("Safari/%d.1.15", 605+rng.IntN(6))
	case "Edge":
		token = fmt.Sprintf("Edg/%d.0.%d.59", 80+rng.IntN(21), 800+rng.IntN(100))
	case "Opera":
		token = fmt.Sprintf("Opera/%d.0.%d.80", 60+rng.IntN(11), 3000+rng.IntN(1000))
	default:
		token = fmt.Sprintf("Chrome/%d.0.%d.124", 70+rng.IntN(31), 3000+rng.IntN(1000))
	}

	return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) %s", system, token)
}
