// Package pipefleet runs fleets of producer/consumer worker process pairs
// connected by anonymous pipes.
//
// Each pair is one pipe, one producer process writing a short sequence of
// integers into it and one consumer process summing what it reads until
// end-of-stream. The coordinator spawns pairs in order, closes its own copies
// of every pipe end, and then waits for every worker it spawned, in spawn
// order, reporting how each one terminated.
//
// Workers are the coordinator's own binary, re-executed with a worker
// environment. Any binary that runs fleets must therefore call ServeWorker
// before anything else:
//
//	func main() {
//	    pipefleet.ServeWorker()
//
//	    report, err := pipefleet.RunPairs(2)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := report.Err(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Tests that run fleets do the same in TestMain:
//
//	func TestMain(m *testing.M) {
//	    pipefleet.ServeWorker()
//	    os.Exit(m.Run())
//	}
//
// # Failure Handling
//
// If a pipe or a worker cannot be created, no further pairs are spawned, but
// every worker already running (including the producer of a half-spawned
// pair) is still waited on. RunBasic and RunPairs then return both the
// Report and the error. A worker that was spawned but failed is not an
// error of the run itself: inspect Report.Err.
package pipefleet
