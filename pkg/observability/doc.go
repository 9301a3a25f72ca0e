/*
Package observability provides tools for monitoring the reattach engine.

Both Metrics and LogHooks are delivered as domain.LifecycleHooks, so they can
be combined with LifecycleHooks.Merge and handed to reattach.WithLifecycleHooks.
*/
package observability
