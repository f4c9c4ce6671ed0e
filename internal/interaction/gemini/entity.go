package gemini

// Schema is the subset of the OpenAPI schema accepted as responseSchema.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// PriceSchema constrains generation to an array of commodity records.
var PriceSchema = &Schema{
	Type: "ARRAY",
	Items: &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"metal": {
				Type:        "STRING",
				Description: "The name of the metal, either 'Gold' or 'Silver'.",
				Enum:        []string{"Gold", "Silver"},
			},
			"price": {
				Type:        "NUMBER",
				Description: "The current price of the metal.",
			},
			"currency": {
				Type:        "STRING",
				Description: "The currency code, e.g., 'USD', 'EUR', 'JPY'.",
			},
			"unit": {
				Type:        "STRING",
				Description: "The unit of measurement, e.g., 'per troy ounce'.",
			},
			"change": {
				Type:        "NUMBER",
				Description: "The percentage change for the day. Positive for increase, negative for decrease.",
			},
		},
		Required: []string{"metal", "price", "currency", "unit", "change"},
	},
}

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema"`
}

// GenerateContentRequest is the body of models/{model}:generateContent.
type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type PromptFeedback struct {
	BlockReason string `json:"blockReason"`
}

// GenerateContentResponse is the successful response of generateContent.
type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
}

// Text joins the text parts of the first candidate.
func (r *GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}

	var text string
	for _, part := range r.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text
}

// ErrorResponse is the body of a non-2xx response.
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"` // ex: RESOURCE_EXHAUSTED
	} `json:"error"`
}
