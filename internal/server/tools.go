package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": description}
}

func boolProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description}
}

// outputProps are shared by every tool that returns an image.
func outputProps(props map[string]interface{}) map[string]interface{} {
	props["format"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"jpeg", "png"},
		"description": "Image format of the result. Default jpeg",
		"default":     "jpeg",
	}
	props["save"] = boolProp("Also write the image to the configured output directory and return its path")
	return props
}

// canvasRegionProps describes a region on the authoring canvas, whose
// origin is the lower-left corner.
func canvasRegionProps(what string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": what,
		"properties": map[string]interface{}{
			"x1": numberProp("Left edge"),
			"y1": numberProp("Bottom edge (canvas, lower-left origin)"),
			"x2": numberProp("Right edge"),
			"y2": numberProp("Top edge"),
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Diagrams
		{
			Name:        "diagram_dimensions",
			Description: "Draw the facing, side and perspective figures of a book from its project file, captioned with width x depth x height, unit and name.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": outputProps(map[string]interface{}{
					"project": stringProp("Absolute path to the project file (.toml or .json)"),
					"width":   integerProp("Minimum canvas width. Default 200"),
					"height":  integerProp("Minimum canvas height. Default 200"),
					"scale":   numberProp("Pixels per unit. Default 1"),
				}),
				"required": []string{"project"},
			},
		},
		{
			Name:        "diagram_overview",
			Description: "Draw the book as a strip of steps coloured by category, with run labels and an optional colour key.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": outputProps(map[string]interface{}{
					"project": stringProp("Absolute path to the project file (.toml or .json)"),
					"width":   integerProp("Canvas width. Default 800"),
					"height":  integerProp("Canvas height, not counting the colour key. Default 50"),
					"orientation": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical"},
						"description": "Direction the steps advance. Default horizontal",
					},
					"step_offset": integerProp("Number added to step labels"),
					"texturing": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Per-step texturing; 0 draws the vertical texture",
					},
					"color_key": boolProp("Draw a colour key below the strip"),
				}),
				"required": []string{"project"},
			},
		},
		{
			Name:        "diagram_rules",
			Description: "Draw one panel per rule in a rule set, showing the rule text around a page box with the source group highlighted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": outputProps(map[string]interface{}{
					"ruleset": stringProp("Absolute path to the rule set file (.toml or .json)"),
				}),
				"required": []string{"ruleset"},
			},
		},

		// Regions
		{
			Name:        "region_rescale",
			Description: "Map a region from canvas units into destination pixels. The display offset is removed from x only, and y is flipped to an upper-left origin.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"region": canvasRegionProps("Region in canvas units"),
					"source": map[string]interface{}{
						"type":        "object",
						"description": "Canvas the region was drawn on",
						"properties": map[string]interface{}{
							"width":    numberProp("Canvas width"),
							"height":   numberProp("Canvas height"),
							"offset_x": numberProp("Display offset x"),
							"offset_y": numberProp("Display offset y (recorded, not applied)"),
						},
						"required": []string{"width", "height"},
					},
					"dest": map[string]interface{}{
						"type":        "object",
						"description": "Destination raster",
						"properties": map[string]interface{}{
							"width":  integerProp("Width in pixels"),
							"height": integerProp("Height in pixels"),
						},
						"required": []string{"width", "height"},
					},
				},
				"required": []string{"region", "source", "dest"},
			},
		},
		{
			Name:        "region_bounds",
			Description: "Return every group's bounding box in scan pixels. With a scan, also return the scan with the boxes drawn on it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": outputProps(map[string]interface{}{
					"ruleset":     stringProp("Absolute path to the rule set file"),
					"scan":        stringProp("Optional absolute path to a page scan to draw on"),
					"grid":        integerProp("Coordinate grid spacing in pixels, 0 for none"),
					"show_hidden": boolProp("Include groups marked hidden"),
				}),
				"required": []string{"ruleset"},
			},
		},
		{
			Name:        "region_text",
			Description: "OCR the text inside a region of a page scan. Give either x1..y2 in scan pixels or a rule set and group name.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scan":        stringProp("Absolute path to the page scan"),
					"x1":          integerProp("Left edge in scan pixels"),
					"y1":          integerProp("Top edge in scan pixels"),
					"x2":          integerProp("Right edge (exclusive)"),
					"y2":          integerProp("Bottom edge (exclusive)"),
					"ruleset":     stringProp("Rule set defining the group, instead of coordinates"),
					"group":       stringProp("Group to read, instead of coordinates"),
					"language":    stringProp("Tesseract language code. Default from configuration"),
					"single_line": boolProp("Treat the region as a single line of text"),
				},
				"required": []string{"scan"},
			},
		},
		{
			Name:        "rules_evaluate",
			Description: "Read every rule's field from a page scan and report the text and whether the rule matched.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"ruleset":  stringProp("Absolute path to the rule set file"),
					"scan":     stringProp("Absolute path to the page scan"),
					"language": stringProp("Tesseract language code. Default from configuration"),
				},
				"required": []string{"ruleset", "scan"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
