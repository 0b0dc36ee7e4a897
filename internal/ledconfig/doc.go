// Package ledconfig loads LED group config documents and builds the
// layout.GroupMap consumed by the LED controller.
//
// # Pipeline
//
//  1. Resolver.Resolve picks the path, asking a Discoverer when none is given.
//  2. LoadFile / Parse read the bytes and check that they are a JSON object
//     with an integer "version" (default 1).
//  3. BuilderRegistry.Dispatch routes the document to the Builder registered
//     for its version. Unknown versions fail with *UnsupportedVersionError.
//  4. BuilderV1 walks "leds" in document order, decoding each member's
//     Action and Priority, range-checking DutyOn (uint8) and Period (uint16),
//     and recording every priority in a per-load PriorityMap.
//
// # Schema (version 1)
//
//	{
//	  "version": 1,
//	  "leds": [
//	    {
//	      "group": "enclosure_fault",
//	      "members": [
//	        {"Name": "front_fault", "Action": "On", "DutyOn": 50, "Period": 0, "Priority": "On"}
//	      ]
//	    }
//	  ]
//	}
//
// Group paths are BuildOptions.BasePath + "/" + group. Member keys are case
// sensitive. Omitted keys default to Name "", DutyOn 50, Period 0 and
// Priority "Blink". Action has no default and must be "On" or "Blink".
//
// # Invariants
//
// An LED's Priority must be identical in every group that lists it. Within a
// group an LED may be listed once. Repeated group paths are rejected unless
// BuildOptions.DuplicateGroups says otherwise.
//
// All failures abort the load; no partial GroupMap is returned. Every error
// matches one of the Err* sentinels through errors.Is.
package ledconfig
