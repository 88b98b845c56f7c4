package models

// ImageSource pairs a remote image with the object key it is mirrored to.
type ImageSource struct {
	URL string
	Key string
}

// MirroredImage is returned to the caller once an image has been uploaded.
type MirroredImage struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// EucalyptusImages are the decoration images the invitation page loads from storage.
var EucalyptusImages = []ImageSource{
	{URL: "https://cdn.poehali.dev/files/7.png", Key: "eucalyptus-branch-1.png"},
	{URL: "https://cdn.poehali.dev/files/8.png", Key: "eucalyptus-branch-2.png"},
}
