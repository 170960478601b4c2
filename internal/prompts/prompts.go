// Package prompts holds the catalog of prompt variants used to probe a model
// about object presence: one neutral baseline, phrasings engineered to induce
// hallucination, and phrasings meant to suppress it.
package prompts

import (
	"fmt"
	"sort"
	"strings"
)

// Placeholder marks where the probed object name is substituted in a template.
const Placeholder = "{object}"

// Catalog maps a prompt-variant key to its template text.
type Catalog map[string]string

var builtin = Catalog{
	"baseline": `
You are an image recognition system. I will give you an image and ask whether a specific object is present.
You must answer strictly with only one word: "yes" or "no". No explanation.

Object to check: "{object}"

Does this image contain this object?
`,

	"misleading1": `
You are analyzing this image as part of a visual survey.
In similar images from this dataset, the object "{object}" often appears,
even if partially hidden or small.

Answer strictly with "yes" or "no":
Is the object "{object}" present in this image?
`,

	"misleading2": `
I thought I saw a "{object}" somewhere in this image, possibly in the background.
Please confirm my observation.

Answer only with "yes" or "no":
Is the object "{object}" actually present in this image?
`,

	"misleading3": `
According to visual statistics, images like this often contain a "{object}",
even if not the main focus.

Answer strictly with "yes" or "no":
Is a "{object}" present in this image?
`,

	"misleading4": `
This image appears to show a scene where objects commonly related to "{object}" may appear.

Based on this context, answer only "yes" or "no":
Is a "{object}" present in the image?
`,

	"mitigate1": `
You must only answer "yes" if the object is clearly and unambiguously visible in the image.
If the object cannot be visually confirmed, or is uncertain, answer "no".

Object: "{object}"

Based strictly on visible evidence only, does the image contain this object?
Answer only "yes" or "no".
`,

	"mitigate2": `
Do not guess.
If you are not completely certain the object is present, answer "no".
Never infer or assume anything beyond what is visually obvious.

Object: "{object}"

Answer strictly "yes" or "no":
Is this object visible in the image?
`,

	"mitigate3": `
You are a highly cautious visual verification system designed to avoid hallucination.
You never report an object unless it is clearly identifiable in the pixels.

Object to check: "{object}"

Answer with "yes" or "no":
Is this object clearly visible?
`,

	"mitigate4": `
Follow this strict rule:

1. Internally analyze the image and form a detailed understanding of the scene.
2. Internally check if the object "{object}" is visually obvious.
3. If obvious, final answer "yes".
4. If not obvious, final answer "no".

Do all analysis internally.
For the final output, answer only with a single word: "yes" or "no".
`,
}

// Default returns a copy of the built-in catalog.
func Default() Catalog {
	c := make(Catalog, len(builtin))
	for k, v := range builtin {
		c[k] = v
	}
	return c
}

// Merge applies template overrides on top of the catalog. Unknown keys add
// new variants.
func (c Catalog) Merge(overrides map[string]string) {
	for k, v := range overrides {
		c[k] = v
	}
}

// Render produces the prompt text for a variant applied to an object name.
func (c Catalog) Render(variant, object string) (string, error) {
	tmpl, ok := c[variant]
	if !ok {
		return "", fmt.Errorf("unknown prompt variant %q", variant)
	}
	return strings.ReplaceAll(tmpl, Placeholder, object), nil
}

// Variants lists the catalog keys in sorted order.
func (c Catalog) Variants() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
