package ordering

// EffectMove is the drop effect advertised to the client drag subsystem.
const EffectMove = "move"

// DragController tracks the item currently being dragged. The zero value is
// ready to use.
type DragController struct {
	draggedID string
	active    bool
}

func (d *DragController) DragStart(id string) string {
	d.draggedID = id
	d.active = id != ""
	return EffectMove
}

// DragEnd clears the drag state whether or not a drop happened.
func (d *DragController) DragEnd() {
	d.draggedID = ""
	d.active = false
}

// DragOver allows the drop; it never mutates state.
func (d *DragController) DragOver() string {
	return EffectMove
}

func (d *DragController) Dragged() (string, bool) {
	return d.draggedID, d.active
}
