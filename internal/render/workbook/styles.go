package workbook

import "github.com/xuri/excelize/v2"

type styles struct {
	institution int
	subtitle    int
	title       int
	bannerLine  int
	header      int
	body        int
	link        int
}

func thinBorder(color string) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: color, Style: 1},
		{Type: "top", Color: color, Style: 1},
		{Type: "right", Color: color, Style: 1},
		{Type: "bottom", Color: color, Style: 1},
	}
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	centered := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	definitions := map[*int]*excelize.Style{
		&s.institution: {Font: &excelize.Font{Bold: true, Size: 16, Color: "1F4E79"}, Alignment: centered},
		&s.subtitle:    {Font: &excelize.Font{Italic: true, Size: 11}, Alignment: centered},
		&s.title:       {Font: &excelize.Font{Bold: true, Size: 13}, Alignment: centered},
		&s.bannerLine:  {Font: &excelize.Font{Size: 11}, Alignment: centered},
		&s.header: {
			Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
			Border:    thinBorder("000000"),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		},
		&s.body: {
			Font:      &excelize.Font{Size: 10},
			Border:    thinBorder("BFBFBF"),
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		},
		&s.link: {
			Font:      &excelize.Font{Size: 10, Color: "0563C1", Underline: "single"},
			Border:    thinBorder("BFBFBF"),
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		},
	}

	for target, style := range definitions {
		id, err := f.NewStyle(style)
		if err != nil {
			return styles{}, err
		}
		*target = id
	}
	return s, nil
}
