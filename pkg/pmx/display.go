package pmx

// DisplayItem is one entry of a display frame: a bone or a morph.
type DisplayItem interface {
	displayItem()
}

// DisplayBone places a bone in the frame.
type DisplayBone struct {
	Index int32
}

// DisplayMorph places a morph in the frame.
type DisplayMorph struct {
	Index int32
}

func (DisplayBone) displayItem()  {}
func (DisplayMorph) displayItem() {}

// DisplayFrame is a named UI grouping of bones and morphs used by
// animation tooling.
type DisplayFrame struct {
	NameLocal     string
	NameUniversal string
	Special       bool // the built-in "root" and "expression" frames
	Items         []DisplayItem
}

func parseDisplayFrames(r *reader, h *Header) ([]DisplayFrame, error) {
	count, err := r.count(SectionDisplay)
	if err != nil {
		return nil, err
	}

	frames := make([]DisplayFrame, count)
	for i := range frames {
		f := &frames[i]
		if f.NameLocal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		if f.NameUniversal, err = r.text(h.Encoding); err != nil {
			return nil, err
		}
		special, err := r.u8()
		if err != nil {
			return nil, err
		}
		f.Special = special != 0

		itemCount, err := r.count(SectionDisplay)
		if err != nil {
			return nil, err
		}
		f.Items = make([]DisplayItem, itemCount)
		for j := range f.Items {
			tagOff := r.offset()
			tag, err := r.u8()
			if err != nil {
				return nil, err
			}
			switch tag {
			case 0:
				index, err := r.elementIndex(h.BoneIndexWidth)
				if err != nil {
					return nil, err
				}
				f.Items[j] = DisplayBone{Index: index}
			case 1:
				index, err := r.elementIndex(h.MorphIndexWidth)
				if err != nil {
					return nil, err
				}
				f.Items[j] = DisplayMorph{Index: index}
			default:
				return nil, &UnknownVariantError{Context: "display frame target", Tag: tag, Offset: tagOff}
			}
		}
	}

	return frames, nil
}
