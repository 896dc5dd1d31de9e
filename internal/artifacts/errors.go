package artifacts

import "errors"

// ErrNoArtifact means no render has succeeded yet.
var ErrNoArtifact = errors.New("no artifact available")

// ErrNothingToRender means the document has no content to render.
var ErrNothingToRender = errors.New("nothing to render")
