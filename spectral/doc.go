// Package spectral implements a hero-wavelength spectral sampling
// convention: a Sample carries four wavelength lanes derived from a
// single "hero" wavelength, spaced a quarter of the visible range apart
// and wrapped back into range.
//
// XYZ<->RGB conversion is delegated to github.com/lucasb-eyer/go-colorful.
package spectral
