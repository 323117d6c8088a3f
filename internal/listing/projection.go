package listing

// Projection is the serializable form of a listing used for draft
// persistence. It is deliberately lossy: image previews survive, raw image
// bytes do not. A draft restored after a restart therefore renders its
// previews but holds no publishable bytes until the files are re-attached.
//
// The projection is a pure function of the aggregate: saving twice without
// an intervening edit stores identical bytes.
type Projection struct {
	Basic       BasicProjection     `json:"basic"`
	Description Description         `json:"description"`
	Pricing     Pricing             `json:"pricing"`
	Portfolio   PortfolioProjection `json:"portfolio"`
}

// BasicProjection is BasicInfo with the main-image handle replaced by its
// preview representation.
type BasicProjection struct {
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	Tags             []string `json:"tags"`
	MainImageName    string   `json:"main_image_name,omitempty"`
	MainImagePreview string   `json:"main_image_preview,omitempty"`
}

// ImageProjection is the persisted form of an attached image: preview only.
type ImageProjection struct {
	Name    string `json:"name"`
	Preview string `json:"preview"`
}

// PortfolioProjection is Portfolio with every image reduced to its preview.
type PortfolioProjection struct {
	Images   []ImageProjection `json:"images"`
	VideoURL string            `json:"video_url"`
}

// Project builds the serializable projection of a listing. It is a pure
// transform over a deep copy: no field of the input is shared or mutated, and
// every binary handle is dropped while its preview string is kept.
func Project(l *Listing) Projection {
	c := l.Clone()

	p := Projection{
		Basic: BasicProjection{
			Title:       c.Basic.Title,
			Category:    c.Basic.Category,
			Subcategory: c.Basic.Subcategory,
			Tags:        c.Basic.Tags,
		},
		Description: c.Description,
		Pricing:     c.Pricing,
		Portfolio: PortfolioProjection{
			VideoURL: c.Portfolio.VideoURL,
		},
	}
	if c.Basic.MainImage != nil {
		p.Basic.MainImageName = c.Basic.MainImage.Name
		p.Basic.MainImagePreview = c.Basic.MainImage.Preview
	}
	for _, img := range c.Portfolio.Images {
		p.Portfolio.Images = append(p.Portfolio.Images, ImageProjection{
			Name:    img.Name,
			Preview: img.Preview,
		})
	}
	return p
}

// Hydrate rebuilds a listing from a persisted projection. Binary handles come
// back nil by contract: only previews survive a reload.
func (p Projection) Hydrate() *Listing {
	l := &Listing{
		Basic: BasicInfo{
			Title:       p.Basic.Title,
			Category:    p.Basic.Category,
			Subcategory: p.Basic.Subcategory,
			Tags:        append([]string(nil), p.Basic.Tags...),
		},
		Description: Description{
			Text:              p.Description.Text,
			Features:          append([]string(nil), p.Description.Features...),
			BuyerInstructions: p.Description.BuyerInstructions,
		},
		Pricing: Pricing{
			Basic:    p.Pricing.Basic.clone(),
			Standard: p.Pricing.Standard.clone(),
			Premium:  p.Pricing.Premium.clone(),
			Extras:   append([]Extra(nil), p.Pricing.Extras...),
		},
		Portfolio: Portfolio{
			VideoURL: p.Portfolio.VideoURL,
		},
	}
	if p.Basic.MainImagePreview != "" || p.Basic.MainImageName != "" {
		l.Basic.MainImage = &Image{
			Name:    p.Basic.MainImageName,
			Preview: p.Basic.MainImagePreview,
			Data:    nil,
		}
	}
	for _, img := range p.Portfolio.Images {
		l.Portfolio.Images = append(l.Portfolio.Images, Image{
			Name:    img.Name,
			Preview: img.Preview,
			Data:    nil,
		})
	}
	return l
}
