package core

// extractFunc turns file content into an extraction for one file type.
type extractFunc func(content []byte) Extraction

// extractors maps each parseable type to its extractor. It is never modified
// after initialization, so ParseFile is safe for concurrent use.
var extractors = map[FileType]extractFunc{
	TypeSisClasslist: func(b []byte) Extraction { return ExtractSisClasslist(b) },
	TypeLmsGroupMembers: func(b []byte) Extraction {
		return ExtractLmsGroupMembers(DecodeText(b))
	},
	TypeLmsGroups: func(b []byte) Extraction { return ExtractLmsGroups(DecodeText(b)) },
	TypeGenericCsv: func(b []byte) Extraction {
		return ExtractGenericCsv(DecodeText(b))
	},
	// Arbitrary workbooks get the class list heuristics; a shape mismatch
	// just yields fewer records.
	TypeGenericXlsx: func(b []byte) Extraction { return ExtractSisClasslist(b) },
}

// ParseFile classifies filename and runs the matching extractor over content.
// It returns an *UnsupportedFileTypeError when the filename matches no known
// format. Otherwise the result is always non-nil, possibly with zero records.
func ParseFile(filename string, content []byte) (*ParseResult, error) {
	c := Classify(filename)

	extract, ok := extractors[c.Type]
	if !ok {
		return nil, &UnsupportedFileTypeError{Filename: filename}
	}

	return &ParseResult{
		Type:     c.Type,
		Metadata: c.Metadata,
		Data:     extract(content),
	}, nil
}

// SupportedTypes lists the file types ParseFile can extract, in classification order.
func SupportedTypes() []FileType {
	types := make([]FileType, 0, len(classifyRules))
	for _, rule := range classifyRules {
		if _, ok := extractors[rule.fileType]; ok {
			types = append(types, rule.fileType)
		}
	}
	return types
}
