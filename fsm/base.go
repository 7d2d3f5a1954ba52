package fsm

// Base provides no-op hooks. Embed it and override what a state needs.
type Base[C any] struct{}

func (Base[C]) OnStart(C)  {}
func (Base[C]) OnStop(C)   {}
func (Base[C]) OnPause(C)  {}
func (Base[C]) OnResume(C) {}

func (Base[C]) HandleEvents(C) Trans[C] { return Trans[C]{} }
func (Base[C]) FixedUpdate(C) Trans[C]  { return Trans[C]{} }
func (Base[C]) Update(C) Trans[C]       { return Trans[C]{} }
