// Package tabs generates a self-contained, accessible tabs HTML
// document from a list of labels. The output is the product, not a
// view: it is handed to the caller verbatim and optionally snapshotted
// to the save store.
package tabs

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
)

// SaveType tags generator snapshots in the save store.
const SaveType = "generator"

var (
	ErrNoLabels      = errors.New("at least one tab label is required")
	ErrActiveOutside = errors.New("active tab index is out of range")
)

const styleBlock = `<style>
  #tabs { font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial; max-width: 900px; margin: 24px auto; }
  #tablist { display: flex; gap: 6px; border-bottom: 1px solid #ccc; }
  #tablist button { border: 1px solid #ccc; border-bottom: none; padding: 8px 12px; background: #f7f7f7; cursor: pointer; }
  #tablist button[aria-selected="true"] { background: #fff; font-weight: 600; outline: 2px solid #333; }
  .panel { border: 1px solid #ccc; padding: 12px; }
</style>`

const scriptBlock = `<script>
  (function() {
    function selectTab(index) {
      var buttons = document.querySelectorAll('#tablist button');
      var panels  = document.querySelectorAll('.panel');

      buttons.forEach(function(btn, i){
        var selected = i === index;
        btn.setAttribute('aria-selected', selected ? 'true' : 'false');
        btn.tabIndex = selected ? 0 : -1;
      });

      panels.forEach(function(panel, i){
        panel.style.display = (i === index) ? 'block' : 'none';
      });

      var expires = new Date(Date.now() + 30*24*60*60*1000).toUTCString();
      document.cookie = 'last_tab_index=' + index + '; expires=' + expires + '; path=/; SameSite=Lax';
    }

    var cookie = document.cookie.split('; ').find(r => r.startsWith('last_tab_index='));
    var idx = cookie ? parseInt(cookie.split('=')[1]) : %d;
    window.addEventListener('DOMContentLoaded', function(){ selectTab(isNaN(idx) ? 0 : idx); });
    window.__selectTab = selectTab;
  })();
</script>`

// Generate emits the full tabs document. The active index seeds the tab
// shown when no cookie from a previous visit is present.
func Generate(labels []string, active int) (string, error) {
	if len(labels) == 0 {
		return "", ErrNoLabels
	}
	if active < 0 || active >= len(labels) {
		return "", ErrActiveOutside
	}

	buttons := make([]string, 0, len(labels))
	panels := make([]string, 0, len(labels))
	for i, label := range labels {
		escaped := html.EscapeString(label)
		buttons = append(buttons, fmt.Sprintf(
			`<button role="tab" aria-selected="false" aria-controls="panel-%d" id="tab-%d" onclick="window.__selectTab(%d)">%s</button>`,
			i, i, i, escaped,
		))
		panels = append(panels, fmt.Sprintf(
			"<div role=\"tabpanel\" id=\"panel-%d\" aria-labelledby=\"tab-%d\" class=\"panel\" style=\"display:none;\">\n  <h3>%s</h3>\n  <p>Content for %s goes here.</p>\n</div>",
			i, i, escaped, escaped,
		))
	}

	doc := fmt.Sprintf(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>Tabs Demo</title>
%s
</head>
<body>
  <div id="tabs">
    <div id="tablist" role="tablist" aria-label="Sample Tabs">
      %s
    </div>
%s
  </div>
%s
</body>
</html>`,
		styleBlock,
		strings.Join(buttons, "\n      "),
		strings.Join(panels, "\n"),
		fmt.Sprintf(scriptBlock, active),
	)
	return doc, nil
}

// Snapshot is the versioned save payload for the generator.
type Snapshot struct {
	Version int      `json:"version,omitempty"`
	Labels  []string `json:"labels"`
	Active  int      `json:"active"`
}

func (s Snapshot) Encode() (string, error) {
	s.Version = 1
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Decode restores a generator snapshot, falling back to a single
// default tab when fields are missing or out of range.
func Decode(payload string) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return Snapshot{}, errors.New("could not parse generator snapshot")
	}
	if len(snap.Labels) == 0 {
		snap.Labels = []string{"Tab 1"}
	}
	if snap.Active < 0 || snap.Active >= len(snap.Labels) {
		snap.Active = 0
	}
	return snap, nil
}
