package entities

import (
	"iges-kernel/internal/global"
	"iges-kernel/internal/model"
	"iges-kernel/internal/tokenize"
)

// splineSegment holds one segment's cubic coefficients for x(t), y(t),
// z(t) = A + B·t + C·t² + D·t³, t local to the segment.
type splineSegment struct {
	AX, BX, CX, DX float64
	AY, BY, CY, DY float64
	AZ, BZ, CZ, DZ float64
}

// ParametricSpline implements entity type 112: a piecewise-cubic curve
// given as N segments over N+1 break points, plus the terminal point and
// its first two derivatives at the final break point.
type ParametricSpline struct {
	CType int // 1..6: linear, quadratic, cubic, Wilson-Fowler, mod. W-F, B-spline
	Degree int
	NDim   int // 2 or 3
	N      int // segment count

	Breakpoints []float64 // N+1 values
	Segments    []splineSegment

	TerminalPoint  [3]float64
	TerminalDeriv1 [3]float64
	TerminalDeriv2 [3]float64
}

func init() {
	model.RegisterFactory(model.KindParametricSpline, func() model.Payload { return &ParametricSpline{} })
}

func (p *ParametricSpline) Kind() model.Kind { return model.KindParametricSpline }

func (p *ParametricSpline) ReadPD(s *tokenize.Scanner, g global.Params, form int) error {
	if err := readForm(form, 0); err != nil {
		return err
	}
	hdr, err := readInts(s, 4)
	if err != nil {
		return err
	}
	p.CType, p.Degree, p.NDim, p.N = hdr[0], hdr[1], hdr[2], hdr[3]
	if p.N < 1 {
		return badField("ParametricSpline.ReadPD", "N must be >= 1")
	}

	p.Breakpoints, err = readReals(s, p.N+1)
	if err != nil {
		return err
	}

	p.Segments = make([]splineSegment, p.N)
	for i := 0; i < p.N; i++ {
		vals, err := readReals(s, 12)
		if err != nil {
			return err
		}
		p.Segments[i] = splineSegment{
			AX: vals[0], BX: vals[1], CX: vals[2], DX: vals[3],
			AY: vals[4], BY: vals[5], CY: vals[6], DY: vals[7],
			AZ: vals[8], BZ: vals[9], CZ: vals[10], DZ: vals[11],
		}
	}

	tail, err := readReals(s, 9)
	if err != nil {
		return err
	}
	p.TerminalPoint = [3]float64{tail[0], tail[1], tail[2]}
	p.TerminalDeriv1 = [3]float64{tail[3], tail[4], tail[5]}
	p.TerminalDeriv2 = [3]float64{tail[6], tail[7], tail[8]}
	return nil
}

func (p *ParametricSpline) Format(self *model.Entity, deSeq func(model.Handle) int) ([]string, error) {
	out := formatInts([]int{p.CType, p.Degree, p.NDim, p.N})
	out = append(out, formatReals(p.Breakpoints, bookkeepingTol)...)
	for _, seg := range p.Segments {
		out = append(out, formatReals([]float64{
			seg.AX, seg.BX, seg.CX, seg.DX,
			seg.AY, seg.BY, seg.CY, seg.DY,
			seg.AZ, seg.BZ, seg.CZ, seg.DZ,
		}, bookkeepingTol)...)
	}
	tail := []float64{
		p.TerminalPoint[0], p.TerminalPoint[1], p.TerminalPoint[2],
		p.TerminalDeriv1[0], p.TerminalDeriv1[1], p.TerminalDeriv1[2],
		p.TerminalDeriv2[0], p.TerminalDeriv2[1], p.TerminalDeriv2[2],
	}
	out = append(out, formatReals(tail, bookkeepingTol)...)
	return out, nil
}

func (p *ParametricSpline) Associate(m *model.Model, self *model.Entity) error { return nil }

func (p *ParametricSpline) Rescale(sf float64, self *model.Entity) {
	for i := range p.Segments {
		seg := &p.Segments[i]
		seg.AX *= sf
		seg.BX *= sf
		seg.CX *= sf
		seg.DX *= sf
		seg.AY *= sf
		seg.BY *= sf
		seg.CY *= sf
		seg.DY *= sf
		seg.AZ *= sf
		seg.BZ *= sf
		seg.CZ *= sf
		seg.DZ *= sf
	}
	for i := 0; i < 3; i++ {
		p.TerminalPoint[i] *= sf
		p.TerminalDeriv1[i] *= sf
		p.TerminalDeriv2[i] *= sf
	}
}

func (p *ParametricSpline) Unlink(model.Handle) bool { return false }
func (p *ParametricSpline) Children() []model.Handle { return nil }

func (p *ParametricSpline) StartPoint() [3]float64 {
	if len(p.Segments) == 0 {
		return [3]float64{}
	}
	seg := p.Segments[0]
	return [3]float64{seg.AX, seg.AY, seg.AZ}
}

func (p *ParametricSpline) EndPoint() [3]float64 { return p.TerminalPoint }
