package pptxscene

// PresentationResult is the top-level parse output: the theme,
// table-style catalog, slide size, the ordered slide list, and document
// metadata, plus every non-fatal Diagnostic recorded along the way.
type PresentationResult struct {
	Theme               Theme
	TableStyles         map[string]TableStyle
	DefaultTableStyleID string
	SlideSize           SlideSize
	Slides              []SlideOutput
	Properties          DocumentProperties
	Diagnostics         []Diagnostic
}

// noSlidesMarker is recorded when a presentation's slide list is empty
// after parsing - a presentation.xml with no sldIdLst entries is not
// itself an error, but downstream tooling may grep for this exact string.
const noSlidesMarker = "No slides found in the presentation."

// ParsePresentation is the package's sole entry point: it opens the ZIP
// archive, resolves the part graph, and parses every slide into the
// render-ready scene graph the The two fatal conditions
// (ErrArchiveCorrupt, ErrPresentationMissing) are returned as errors;
// every other failure degrades to a recorded Diagnostic and the offending
// part/shape/slide is skipped.
func ParsePresentation(packageBytes []byte, opts ParseOptions) (PresentationResult, error) {
	em, err := load(packageBytes)
	if err != nil {
		return PresentationResult{}, err
	}

	sink := &diagnosticSink{}

	if !em.has("ppt/presentation.xml") {
		return PresentationResult{}, ErrPresentationMissing
	}

	slideSize, slideRelIDs, ok := parsePresentationPart(em, sink)
	if !ok {
		return PresentationResult{}, ErrPresentationMissing
	}

	presRels := relationshipsFor(em, "ppt/presentation.xml")

	theme := defaultTheme()
	if themeRels := byType(presRels, relTypeTheme); len(themeRels) > 0 {
		themePath := resolveRelTarget("ppt/presentation.xml", themeRels[0])
		if text, ok := em.normalizedText(themePath); ok {
			theme = parseTheme(parseXml(sink, text, themePath))
		} else {
			sink.partMissing(themePath)
		}
	}

	tableStyles := map[string]TableStyle{}
	defaultTableStyleID := ""
	if tsRels := byType(presRels, relTypeTableStyles); len(tsRels) > 0 {
		tsPath := resolveRelTarget("ppt/presentation.xml", tsRels[0])
		if text, ok := em.normalizedText(tsPath); ok {
			tableStyles, defaultTableStyleID = parseTableStyles(parseXml(sink, text, tsPath))
		} else {
			sink.partMissing(tsPath)
		}
	}

	properties := parseCoreProperties(em, sink)

	result := PresentationResult{
		Theme:               theme,
		TableStyles:         tableStyles,
		DefaultTableStyleID: defaultTableStyleID,
		SlideSize:           slideSize,
		Properties:          properties,
	}

	masterCache := map[string]*PartModel{}
	layoutCache := map[string]*PartModel{}

	total := len(slideRelIDs)
	for i, relID := range slideRelIDs {
		if opts.Cancel != nil && opts.Cancel() {
			break
		}

		rel, ok := presRels[relID]
		if !ok {
			sink.relationshipMissing("ppt/presentation.xml", relID)
			continue
		}
		slidePath := resolveRelTarget("ppt/presentation.xml", rel)

		slideText, ok := em.normalizedText(slidePath)
		if !ok {
			sink.partMissing(slidePath)
			continue
		}
		slideRoot := parseXml(sink, slideText, slidePath)
		slideRels := relationshipsFor(em, slidePath)

		stack, ok := resolveAncestry(em, slideRels, slidePath, theme, sink, masterCache, layoutCache)
		if !ok {
			sink.layoutFailure(slidePath, "could not resolve slide layout/master ancestry")
			continue
		}

		colorMap := stack.Master.ColorMap
		if stack.Layout != nil {
			colorMap = stack.Layout.ColorMap
		}

		assets := slideAssets{
			SlideRoot:    slideRoot,
			SlidePath:    slidePath,
			SlideRels:    slideRels,
			Stack:        stack,
			Theme:        theme,
			ColorMap:     colorMap,
			SlideSize:    slideSize,
			TableStyles:  tableStyles,
			DefaultStyle: defaultTableStyleID,
		}

		out := parseSlide(em, assets, opts, sink)
		out.ID = slidePath
		out.Comments = loadSlideComments(em, slidePath, slideRels, sink)
		out.Notes = loadSlideNotes(em, slidePath, slideRels, sink)

		result.Slides = append(result.Slides, out)

		if opts.ProgressSink != nil && total > 0 {
			opts.ProgressSink(float64(i+1) / float64(total))
		}
	}

	if len(result.Slides) == 0 {
		sink.add(DiagKindLayoutFailure, "ppt/presentation.xml", noSlidesMarker)
	}

	result.Diagnostics = sink.items
	return result, nil
}

// resolveAncestry resolves a slide's layout and master parts, caching each
// PartModel by its part path so a layout shared by many slides (the common
// case) is parsed exactly once.
func resolveAncestry(em *EntryMap, slideRels map[string]Relationship, slidePath string, theme Theme, sink *diagnosticSink, masterCache, layoutCache map[string]*PartModel) (ResolutionStack, bool) {
	layoutRels := byType(slideRels, relTypeSlideLayout)
	if len(layoutRels) == 0 {
		return ResolutionStack{}, false
	}
	layoutPath := resolveRelTarget(slidePath, layoutRels[0])

	if cached, ok := layoutCache[layoutPath]; ok {
		return ResolutionStack{Master: masterFor(cached, masterCache), Layout: cached}, true
	}

	layoutText, ok := em.normalizedText(layoutPath)
	if !ok {
		sink.partMissing(layoutPath)
		return ResolutionStack{}, false
	}
	layoutRoot := parseXml(sink, layoutText, layoutPath)
	layoutPartRels := relationshipsFor(em, layoutPath)

	masterRels := byType(layoutPartRels, relTypeSlideMaster)
	if len(masterRels) == 0 {
		return ResolutionStack{}, false
	}
	masterPath := resolveRelTarget(layoutPath, masterRels[0])

	master, ok := masterCache[masterPath]
	if !ok {
		masterText, ok := em.normalizedText(masterPath)
		if !ok {
			sink.partMissing(masterPath)
			return ResolutionStack{}, false
		}
		masterRoot := parseXml(sink, masterText, masterPath)
		masterPartRels := relationshipsFor(em, masterPath)
		pm := parsePartModel(masterRoot, true, theme, ColorMap{}, masterPath, masterPartRels, sink)
		master = &pm
		masterCache[masterPath] = master
	}

	layout := parsePartModel(layoutRoot, false, theme, master.ColorMap, layoutPath, layoutPartRels, sink)
	layout.masterPath = masterPath
	layoutCache[layoutPath] = &layout

	return ResolutionStack{Master: master, Layout: &layout}, true
}

func masterFor(layout *PartModel, masterCache map[string]*PartModel) *PartModel {
	return masterCache[layout.masterPath]
}

func loadSlideComments(em *EntryMap, slidePath string, slideRels map[string]Relationship, sink *diagnosticSink) []SlideComment {
	commentRels := byType(slideRels, relTypeComment)
	if len(commentRels) == 0 {
		return nil
	}
	commentsPath := resolveRelTarget(slidePath, commentRels[0])
	commentsText, ok := em.normalizedText(commentsPath)
	if !ok {
		sink.partMissing(commentsPath)
		return nil
	}
	authors := map[string]SlideCommentAuthor{}
	if authorsText, ok := em.normalizedText("ppt/commentAuthors.xml"); ok {
		authors = parseCommentAuthors(parseXml(sink, authorsText, "ppt/commentAuthors.xml"))
	}
	return parseSlideComments(parseXml(sink, commentsText, commentsPath), authors)
}

func loadSlideNotes(em *EntryMap, slidePath string, slideRels map[string]Relationship, sink *diagnosticSink) *SlideNotes {
	notesRels := byType(slideRels, relTypeNotesSlide)
	if len(notesRels) == 0 {
		return nil
	}
	notesPath := resolveRelTarget(slidePath, notesRels[0])
	notesText, ok := em.normalizedText(notesPath)
	if !ok {
		sink.partMissing(notesPath)
		return nil
	}
	return parseSlideNotes(parseXml(sink, notesText, notesPath))
}
