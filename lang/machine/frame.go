package machine

// CallFrame is a per-call record: the closure being executed, the
// instruction pointer into that closure's function's chunk, and a base
// pointer into the value stack (spec §3). Slot 0 of the frame is either the
// callee (for a plain function call) or the receiver (`this`, for a method
// call).
type CallFrame struct {
	closure *ObjClosure
	ip      int
	base    int
}
