package pmx

// Surface is one triangle. Vertex indices are in clockwise winding order.
type Surface struct {
	Vertices [3]uint32
}

func parseSurfaces(r *reader, h *Header) ([]Surface, error) {
	// The stored count is the raw number of vertex indices, three per triangle.
	count, err := r.count(SectionSurface)
	if err != nil {
		return nil, err
	}
	if count%3 != 0 {
		return nil, &InvalidCountError{Section: SectionSurface, Value: int64(count)}
	}

	surfaces := make([]Surface, count/3)
	for i := range surfaces {
		for j := 0; j < 3; j++ {
			if surfaces[i].Vertices[j], err = r.vertexIndex(h.VertexIndexWidth); err != nil {
				return nil, err
			}
		}
	}
	return surfaces, nil
}
