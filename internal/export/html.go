package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"image/png"

	"ui-analyzer/internal/editor"
)

// htmlBox is one element positioned in percent of the image, so the
// overlay stays aligned when the browser scales the image.
type htmlBox struct {
	ID          int
	Description string
	Feedback    string
	Type        string
	Left        string
	Top         string
	Width       string
	Height      string
}

type htmlPage struct {
	ImageData template.URL
	Boxes     []htmlBox
}

var htmlTmpl = template.Must(template.New("analysis").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>UI Analysis</title>
<style>
body { font-family: sans-serif; margin: 16px; }
.frame { position: relative; display: inline-block; max-width: 100%; border: 1px solid #ddd; border-radius: 8px; overflow: hidden; }
.frame img { width: 100%; height: auto; display: block; }
.overlay { position: absolute; top: 0; left: 0; width: 100%; height: 100%; }
.ui-element { position: absolute; border: 2px solid #00ff00; background-color: rgba(0,255,0,0.1); border-radius: 4px; cursor: pointer; display: flex; align-items: center; justify-content: center; font-weight: bold; color: #00ff00; text-shadow: 1px 1px 2px rgba(0,0,0,0.8); }
.ui-element:hover { background-color: rgba(0,255,0,0.3); border-width: 3px; }
#tooltip { position: absolute; background: rgba(0,0,0,0.9); color: white; padding: 8px 12px; border-radius: 6px; font-size: 14px; max-width: 300px; z-index: 1000; display: none; pointer-events: none; }
</style>
</head>
<body>
<div class="frame">
<img src="{{.ImageData}}" alt="analyzed screenshot">
<div class="overlay">
{{range .Boxes}}<div class="ui-element" style="left: {{.Left}}%; top: {{.Top}}%; width: {{.Width}}%; height: {{.Height}}%;" data-id="{{.ID}}" data-desc="{{.Description}}" data-feedback="{{.Feedback}}" data-type="{{.Type}}">{{.ID}}</div>
{{end}}</div>
<div id="tooltip"></div>
</div>
<script>
var tooltip = document.getElementById('tooltip');
document.querySelectorAll('.ui-element').forEach(function (el) {
  el.addEventListener('mouseover', function (ev) {
    var text = '<strong>Element ' + el.dataset.id + ' (' + el.dataset.type + ')</strong><br>' + el.dataset.desc;
    if (el.dataset.feedback) {
      text += '<br><em>' + el.dataset.feedback + '</em>';
    }
    tooltip.innerHTML = text;
    tooltip.style.display = 'block';
    tooltip.style.left = (el.offsetLeft + el.offsetWidth + 10) + 'px';
    tooltip.style.top = el.offsetTop + 'px';
  });
  el.addEventListener('mouseout', function () {
    tooltip.style.display = 'none';
  });
});
</script>
</body>
</html>
`))

// WriteHTML renders the screenshot with hoverable element overlays into
// a standalone HTML file and returns the file path.
func (x *Exporter) WriteHTML(img image.Image, elements []editor.ExportedElement) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image to visualize")
	}

	var imgBuf bytes.Buffer
	if err := png.Encode(&imgBuf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	if w == 0 || h == 0 {
		return "", fmt.Errorf("image has zero size")
	}

	page := htmlPage{
		ImageData: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(imgBuf.Bytes())),
	}
	for _, e := range elements {
		page.Boxes = append(page.Boxes, htmlBox{
			ID:          e.ID,
			Description: e.Description,
			Feedback:    e.Feedback,
			Type:        e.Type,
			Left:        fmt.Sprintf("%.4f", float64(e.Box[0])/w*100),
			Top:         fmt.Sprintf("%.4f", float64(e.Box[1])/h*100),
			Width:       fmt.Sprintf("%.4f", float64(e.Box[2]-e.Box[0])/w*100),
			Height:      fmt.Sprintf("%.4f", float64(e.Box[3]-e.Box[1])/h*100),
		})
	}

	var out bytes.Buffer
	if err := htmlTmpl.Execute(&out, page); err != nil {
		return "", fmt.Errorf("render visualization: %w", err)
	}

	path := x.path(".html")
	if err := x.write(path, out.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}
