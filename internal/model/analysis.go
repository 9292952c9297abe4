package model

import "encoding/base64"

type AnalysisRequest struct {
	Country string
}

type SectorResult struct {
	Sector    string
	Provider  string
	ModelUsed string
}

type Image struct {
	MimeType string
	Data     []byte
}

// DataURI renders the image as an inline base64 data URI.
func (i *Image) DataURI() string {
	return "data:" + i.MimeType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ImageResult carries the prompt sent to the image backend and the image it
// produced. Image is nil when generation failed or was skipped.
type ImageResult struct {
	Prompt string
	Image  *Image
}

func (r ImageResult) Available() bool {
	return r.Image != nil && len(r.Image.Data) > 0
}
