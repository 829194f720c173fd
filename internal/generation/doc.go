// Package generation provides the interfaces between the request pipeline
// and the external generative providers (text generation, text-to-image,
// image transformations). It abstracts the details of each provider's API,
// so swapping the provider behind a capability means implementing one
// interface here and nothing else changes.
package generation
