package mosaic

// LayerStack overlays children back to front: children[0] is the bottom
// layer and later children occlude earlier ones. Modal dialogs, dropdown
// menus, and toasts live here.
//
// The stack manages focus privately. Only the topmost layer containing
// focusables contributes to the focus ring, so an occluded layer can never
// be tabbed into while a modal sits above it.
type LayerStack struct {
	Base

	layers []Node
}

// NewLayerStack creates an empty stack.
func NewLayerStack(layers ...Node) *LayerStack {
	return &LayerStack{layers: layers}
}

// Push adds a layer on top of the stack.
func (s *LayerStack) Push(layer Node) {
	s.layers = append(s.layers, layer)
	s.MarkDirty()
}

// Pop removes and returns the topmost layer, or nil if the stack is empty.
// Focus held inside the removed layer is cleared.
func (s *LayerStack) Pop() Node {
	if len(s.layers) == 0 {
		return nil
	}
	top := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]
	for _, n := range top.FocusableNodes() {
		if n.IsFocused() {
			n.SetFocused(false)
		}
	}
	s.MarkDirty()
	return top
}

// Remove removes the given layer wherever it sits in the stack.
// Returns true if the layer was found.
func (s *LayerStack) Remove(layer Node) bool {
	for i, l := range s.layers {
		if l == layer {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			for _, n := range layer.FocusableNodes() {
				if n.IsFocused() {
					n.SetFocused(false)
				}
			}
			s.MarkDirty()
			return true
		}
	}
	return false
}

// Top returns the topmost layer, or nil if the stack is empty.
func (s *LayerStack) Top() Node {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// Len returns the number of layers.
func (s *LayerStack) Len() int {
	return len(s.layers)
}

// Children returns the layers bottom to top.
func (s *LayerStack) Children() []Node {
	return s.layers
}

// ManagesChildFocus reports that the stack decides which layer exposes
// focusables.
func (s *LayerStack) ManagesChildFocus() bool {
	return true
}

// FocusableNodes scans layers top to bottom and returns the focusables of
// the first layer that has any. Lower layers are occluded.
func (s *LayerStack) FocusableNodes() []Node {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if nodes := s.layers[i].FocusableNodes(); len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}

// Measure returns the largest size any layer wants, clamped into the
// constraints.
func (s *LayerStack) Measure(c Constraints) Size {
	c = c.Normalize()
	var w, h int
	for _, layer := range s.layers {
		size := layer.Measure(c.Loosen())
		if size.Width > w {
			w = size.Width
		}
		if size.Height > h {
			h = size.Height
		}
	}
	return c.Constrain(NewSize(w, h))
}

// Arrange gives every layer the full rect. Layers that want to float
// smaller than the stack arrange themselves within it.
func (s *LayerStack) Arrange(rect Rect) {
	s.SetBounds(rect)
	for _, layer := range s.layers {
		layer.Arrange(rect)
	}
}

// Render paints layers bottom to top so later layers occlude earlier
// ones.
func (s *LayerStack) Render(rc RenderContext) {
	for _, layer := range s.layers {
		layer.Render(rc)
	}
}

// NeedsRender applies the overlay rule: with more than one layer, a dirty
// child anywhere repaints the whole stack. A partial repaint of a lower
// layer would bleed through whatever sits above it.
func (s *LayerStack) NeedsRender() bool {
	if s.Base.NeedsRender() {
		return true
	}
	if len(s.layers) <= 1 {
		return false
	}
	for _, layer := range s.layers {
		if AnyNeedsRender(layer) {
			return true
		}
	}
	return false
}
