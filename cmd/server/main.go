package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"kestrel/api/enginepb"
	"kestrel/api/grpcserver"
	"kestrel/config"
	"kestrel/domain/orderbook"
	"kestrel/infra/kafka"
	"kestrel/infra/memory"
	"kestrel/infra/sequence"
	entrywal "kestrel/infra/wal/entry"
	exitwal "kestrel/infra/wal/exit"
	"kestrel/jobs/broadcaster"
	"kestrel/service"
	"kestrel/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("starting kestrel: %s", cfg)

	// ---------------- Durability ----------------

	entryWAL, err := entrywal.Open(entrywal.Config{
		Dir:             cfg.WAL.Dir,
		SegmentSize:     cfg.WAL.SegmentSize,
		SegmentDuration: cfg.WAL.SegmentDuration,
	})
	if err != nil {
		log.Fatalf("entry WAL init failed: %v", err)
	}
	defer entryWAL.Close()

	outbox, err := exitwal.Open(cfg.Outbox.Dir)
	if err != nil {
		log.Fatalf("outbox init failed: %v", err)
	}
	defer outbox.Close()

	// ---------------- Core ----------------

	seqGen := sequence.New(0)
	pool := memory.NewPool(func() *orderbook.Order {
		return &orderbook.Order{}
	})
	ring := memory.NewRetireRing(uint64(cfg.Engine.RetireRingSize))
	reader := snapshot.NewReader()
	book := orderbook.NewOrderBook(seqGen)

	// ---------------- Recovery ----------------

	if err := service.Recover(cfg.Snapshot.Dir, cfg.WAL.Dir, book, pool, seqGen); err != nil {
		log.Fatalf("recovery failed: %v", err)
	}

	svc := service.NewOrderService(
		cfg.Engine.Symbol,
		book,
		pool,
		ring,
		reader,
		seqGen,
		entryWAL,
		outbox,
	)

	// ---------------- Background Jobs ----------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc.StartReclaimJob(ctx, cfg.Engine.ReclaimInterval)

	var depthPub service.DepthPublisher
	if cfg.Kafka.Enabled {
		pub := kafka.NewDepthPublisher(cfg.Kafka.Brokers, cfg.Kafka.DepthTopic, cfg.Engine.Symbol)
		defer pub.Close()
		depthPub = pub

		bc, err := broadcaster.New(outbox, cfg.Kafka.Brokers, cfg.Kafka.TradeTopic)
		if err != nil {
			log.Fatalf("broadcaster init failed: %v", err)
		}
		defer bc.Close()
		go bc.Run(ctx)
	}

	svc.StartSnapshotJob(ctx, cfg.Snapshot.Dir, cfg.Snapshot.Interval, depthPub, cfg.Engine.DepthLevels)

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		log.Fatalf("listen failed: %v", err)
	}

	grpcSrv := grpc.NewServer(
		grpc.ForceServerCodec(enginepb.Codec{}),
		grpc.MaxRecvMsgSize(cfg.Server.MaxMessageSize),
	)
	enginepb.RegisterEngineServer(grpcSrv, grpcserver.NewServer(svc))

	go func() {
		log.Printf("engine listening on %s", lis.Addr())
		if err := grpcSrv.Serve(lis); err != nil {
			log.Fatalf("gRPC server exited: %v", err)
		}
	}()

	// ---------------- Shutdown ----------------

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("shutting down")
	cancel()
	grpcSrv.GracefulStop()
	if err := entryWAL.Sync(); err != nil {
		log.Printf("final WAL sync failed: %v", err)
	}
}
