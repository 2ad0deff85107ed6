package components

import (
	"github.com/odvcencio/shadotui/pkg/ui/backend"
	"github.com/odvcencio/shadotui/pkg/ui/runtime"
)

var otherStyle = backend.DefaultStyle().Foreground(backend.ColorGreen)

// Other is the secondary pane Home shows beside itself.
type Other struct{}

func (o *Other) Init(runtime.Sender[runtime.Action], runtime.Sender[runtime.Message]) error {
	return nil
}

func (o *Other) Render(f *runtime.Frame, area runtime.Rect) error {
	f.Fill(area, ' ', otherStyle)
	inner := f.DrawBlock(area, runtime.Block{
		Title:       []runtime.Span{runtime.Raw("Other Window")},
		Border:      runtime.BorderPlain,
		BorderStyle: otherStyle,
	})
	f.DrawParagraph(inner, runtime.Paragraph{Text: "HI!", Style: otherStyle})
	return nil
}
