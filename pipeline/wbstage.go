package pipeline

import (
	"rv32isim/component"
	"rv32isim/decode"
	"rv32isim/port"
)

// WbStageBuilder is the write-back stage: a single mux selecting the
// write-back datum per decode.WbSel, grounded on
// original_source/src/simulator/rv32i/wb_stage.rs's WbStageBuilder.
type WbStageBuilder struct {
	mux *component.MuxBuilder
}

// NewWbStageBuilder returns a builder with its mux inputs unconnected.
func NewWbStageBuilder() *WbStageBuilder {
	return &WbStageBuilder{mux: component.NewMuxBuilder()}
}

// ConnectWbSel binds the write-back source selector.
func (b *WbStageBuilder) ConnectWbSel(w port.Wire) { b.mux.ConnectSelect(w) }

// ConnectNpc binds the PC+4 input, selected when WbSel is WbSelNpc.
func (b *WbStageBuilder) ConnectNpc(w port.Wire) { b.mux.ConnectIn(uint32(decode.WbSelNpc), w) }

// ConnectAluRes binds the ALU-result input, selected when WbSel is
// WbSelAlu.
func (b *WbStageBuilder) ConnectAluRes(w port.Wire) { b.mux.ConnectIn(uint32(decode.WbSelAlu), w) }

// ConnectMemData binds the loaded-memory-word input, selected when
// WbSel is WbSelMem.
func (b *WbStageBuilder) ConnectMemData(w port.Wire) { b.mux.ConnectIn(uint32(decode.WbSelMem), w) }

// Alloc returns the wire for the selected write-back value.
func (b *WbStageBuilder) Alloc() port.Wire { return b.mux.Alloc() }
