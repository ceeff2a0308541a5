// Package syncmap offers a lightweight, generic, concurrency-safe map with
// basic Get/Set/Delete/List operations guarded by a sync.RWMutex.  It is
// intentionally minimal and tuned to the specific needs of qwed-mcp.
package syncmap
