package pmx

import "strings"

// Texture is a texture file path relative to the model. The parser never
// loads the referenced file.
type Texture struct {
	Path string
}

func parseTextures(r *reader, h *Header) ([]Texture, error) {
	count, err := r.count(SectionTexture)
	if err != nil {
		return nil, err
	}

	textures := make([]Texture, count)
	for i := range textures {
		path, err := r.text(h.Encoding)
		if err != nil {
			return nil, err
		}
		// Paths are authored on Windows; normalize the separators.
		textures[i].Path = strings.ReplaceAll(path, "\\", "/")
	}
	return textures, nil
}
