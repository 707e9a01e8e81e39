// Package services holds the client-side state of the notes list.
//
// TaskList is the single owner of the notes held by the client. The
// presentation layer reads it through View and changes it only through the
// intent methods (Reload, Create, ToggleFavorite, Save, Delete, SetSearch).
//
// Toggle, save and delete are optimistic: the local list changes before the
// store answers and is put back if the store refuses. A toggle only restores
// the flag it flipped; a failed save or delete restores the whole list as it
// was when the call started.
package services
