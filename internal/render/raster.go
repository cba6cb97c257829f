package render

import (
	"io"

	"github.com/gogpu/gg"
)

// Paint draws f onto a new gg context of the frame's size.  The caller
// owns the context and must Close it.
func Paint(f *Frame) (*gg.Context, error) {
	dc := gg.NewContext(f.Width, f.Height)
	dc.ClearWithColor(f.Background)

	for _, shape := range f.Shapes {
		if len(shape.Points) == 0 {
			continue
		}
		dc.SetColor(shape.Fill.Color())
		dc.MoveTo(shape.Points[0].X, shape.Points[0].Y)
		for _, p := range shape.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			_ = dc.Close()
			return nil, err
		}
	}

	if f.SiteRadius > 0 && len(f.Sites) > 0 {
		dc.SetColor(f.SiteColor.Color())
		for _, c := range f.Sites {
			dc.DrawPoint(c.X, c.Y, f.SiteRadius)
		}
		if err := dc.Fill(); err != nil {
			_ = dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

// WritePNG renders f and encodes it as PNG.
func WritePNG(w io.Writer, f *Frame) error {
	dc, err := Paint(f)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}
