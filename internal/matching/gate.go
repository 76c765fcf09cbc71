package matching

import "strings"

// Built-in caller classification labels and the policy they route to.
const (
	LabelUmrahCompany  = "شركة عمره"
	LabelExternalAgent = "وكيل خارجي"

	PolicyUmrah = "umrah"
)

// Route maps a role label to the policy serving it.
type Route struct {
	Label  string
	Policy Policy
}

// DefaultRoutes routes the built-in labels to p.
func DefaultRoutes(p Policy) []Route {
	return []Route{
		{Label: LabelUmrahCompany, Policy: p},
		{Label: LabelExternalAgent, Policy: p},
	}
}

// Gate decides which policy handles a caller classification.
type Gate struct {
	routes   []Route
	messages Messages
}

// NewGate creates a gate. Labels are normalized; routes with an empty label
// or nil policy are ignored. Routes are tried in order.
func NewGate(messages Messages, routes ...Route) *Gate {
	if messages == nil {
		messages = DefaultMessages()
	}
	g := &Gate{messages: messages}
	for _, r := range routes {
		label := Normalize(r.Label)
		if label == "" || r.Policy == nil {
			continue
		}
		g.routes = append(g.routes, Route{Label: label, Policy: r.Policy})
	}
	return g
}

// SelectPolicy returns the policy for rawUserType, or false when no label
// occurs in the normalized classification.
func (g *Gate) SelectPolicy(rawUserType string) (Policy, bool) {
	userType := Normalize(rawUserType)
	if userType == "" {
		return nil, false
	}
	for _, r := range g.routes {
		if strings.Contains(userType, r.Label) {
			return r.Policy, true
		}
	}
	return nil, false
}

// IsSupportedUserType reports whether any policy serves rawUserType.
func (g *Gate) IsSupportedUserType(rawUserType string) bool {
	_, ok := g.SelectPolicy(rawUserType)
	return ok
}

// Message returns the localized status message for kind.
func (g *Gate) Message(kind MessageKind) string {
	return g.messages.Get(kind)
}

// Messages returns the gate's status message table.
func (g *Gate) Messages() Messages {
	return g.messages
}

// Labels returns the routed labels in routing order.
func (g *Gate) Labels() []string {
	labels := make([]string, 0, len(g.routes))
	for _, r := range g.routes {
		labels = append(labels, r.Label)
	}
	return labels
}
