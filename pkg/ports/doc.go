/*
Package ports defines the driven ports (interfaces) for the reattach engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to drive any document editor and to persist reports anywhere.

# Key Interfaces

  - Host: The document-editing environment (selection, lookup, cloning, mutation, fonts).
  - FontLoader: Asynchronous font readiness, required before text mutation.
  - ReportStore: Responsible for persisting and loading run reports.
  - DistributedLocker: Serialises runs on the same document across replicas.

Adapters verify themselves with RunHostContract and RunReportStoreContract.
*/
package ports
