// Package extract collects embedded text from semi-structured archive data.
//
// Component payloads from the content store have no fixed schema. OCR and
// transcription text can appear under an "extracted_text" (or
// "ExtractedText", "extractedText", ...) key at any depth, inside objects or
// arrays. Text walks the whole value and returns every such string.
//
// Inputs are assumed to be tree-shaped, as produced by decoding JSON. No
// visited set is kept; a producer that introduces shared or cyclic structure
// must add one before passing its values here.
package extract
