// Package attr resolves //extract: comment directives into an adapter
// configuration. It is a pure parse/validate pass over one scope's
// annotations: it holds no state and produces either a Config or a
// positioned diagnostic.
package attr
