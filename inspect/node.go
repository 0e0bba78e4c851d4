package inspect

import "selectorkit/ui/position"

// Node represents a UI component in the inspection tree.
type Node struct {
	// Type is the component type (e.g., "Selector", "Trigger", "Panel").
	Type string `json:"type"`

	// ID is an optional identifier for the component.
	ID string `json:"id,omitempty"`

	// Bounds is where the component sits on screen, in cells.
	Bounds Bounds `json:"bounds"`

	// Visible indicates if the component is currently rendered.
	Visible bool `json:"visible"`

	// State contains component-specific state information.
	State map[string]interface{} `json:"state,omitempty"`

	Styles *StyleInfo `json:"styles,omitempty"`

	Children []*Node `json:"children,omitempty"`

	// Content is the plain text content if applicable.
	Content string `json:"content,omitempty"`
}

// Bounds represents component position and dimensions.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// StyleInfo contains styling information for a component.
type StyleInfo struct {
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`

	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Underline bool `json:"underline,omitempty"`

	Border      string `json:"border,omitempty"`
	BorderColor string `json:"border_color,omitempty"`
	Padding     []int  `json:"padding,omitempty"` // [top, right, bottom, left]

	// Names of the registered styles in use
	AppliedStyles []string `json:"applied_styles,omitempty"`
}

// NewNode creates a new visible Node with the given type.
func NewNode(nodeType string) *Node {
	return &Node{
		Type:    nodeType,
		Visible: true,
		State:   make(map[string]interface{}),
	}
}

// WithID sets the node ID and returns the node for chaining.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithBounds sets the node bounds and returns the node for chaining.
func (n *Node) WithBounds(x, y, width, height int) *Node {
	n.Bounds = Bounds{X: x, Y: y, Width: width, Height: height}
	return n
}

// WithGeometry sets the bounds from a measured box.
func (n *Node) WithGeometry(g position.Geometry) *Node {
	return n.WithBounds(g.Left, g.Top, g.Width, g.Height)
}

// WithVisible marks the node as rendered or not.
func (n *Node) WithVisible(visible bool) *Node {
	n.Visible = visible
	return n
}

// WithState adds a state key-value pair and returns the node for chaining.
func (n *Node) WithState(key string, value interface{}) *Node {
	if n.State == nil {
		n.State = make(map[string]interface{})
	}
	n.State[key] = value
	return n
}

// WithStyles sets the node styles and returns the node for chaining.
func (n *Node) WithStyles(styles *StyleInfo) *Node {
	n.Styles = styles
	return n
}

// AddChild adds a child node and returns the parent for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// WithContent sets the node content and returns the node for chaining.
func (n *Node) WithContent(content string) *Node {
	n.Content = content
	return n
}

// Find returns the first node in the tree with the given type and ID.
// An empty id matches any node of that type.
func (n *Node) Find(nodeType, id string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == nodeType && (id == "" || n.ID == id) {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(nodeType, id); found != nil {
			return found
		}
	}
	return nil
}
