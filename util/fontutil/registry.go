package fontutil

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Registry de-duplicates fonts and faces. It is owned by the host
// application and passed by reference to whatever needs font lookup;
// there is no package-level instance.
type Registry struct {
	mu         sync.Mutex
	fontsCache map[string]*Font
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.ClearFontsCache()
	return r
}

func (r *Registry) ClearFontsCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fontsCache = map[string]*Font{}
}

func (r *Registry) Font(ttf []byte) (*Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fontsCache[string(ttf)]
	if ok {
		return f, nil
	}
	f, err := NewFont(ttf)
	if err != nil {
		return nil, err
	}
	r.fontsCache[string(ttf)] = f
	return f, nil
}

func (r *Registry) Face(ttf []byte, opt opentype.FaceOptions) (*FontFace, error) {
	f, err := r.Font(ttf)
	if err != nil {
		return nil, err
	}
	return f.FontFace(opt), nil
}

// TruetypeFace builds a face through the freetype rasterizer, which
// supports hinting options the opentype path does not.
func (r *Registry) TruetypeFace(ttf []byte, opt *truetype.Options) (*FontFace, error) {
	tf, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("fontutil: truetype parse: %w", err)
	}
	face := truetype.NewFace(tf, opt)
	size := opt.Size
	if size == 0 {
		size = 12
	}
	return NewFontFace2(face, size), nil
}

//----------

func (r *Registry) DefaultFace() *FontFace {
	ff, err := r.Face(goregular.TTF, opentype.FaceOptions{})
	if err != nil {
		panic(err)
	}
	return ff
}

func (r *Registry) MonoFace(size float64) *FontFace {
	ff, err := r.Face(gomono.TTF, opentype.FaceOptions{Size: size})
	if err != nil {
		panic(err)
	}
	return ff
}
