package recorder

import "GoldLens/internal/model"

// NoopRecorder discards every artifact. Used when DRY_RUN is set.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) WriteTables(_ model.TableSet) error            { return nil }
func (n *NoopRecorder) WriteFast(_ model.TableSet) error              { return nil }
func (n *NoopRecorder) WriteTickers(_ []model.TickerInfo) error       { return nil }
func (n *NoopRecorder) WriteGoldPrices(_ []model.NormalizedRow) error { return nil }
func (n *NoopRecorder) Close() error                                  { return nil }
