// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"math"
	"unsafe"
)

// Handle types. Dispatchable and non-dispatchable handles are both 64-bit
// on every platform this binding targets.
type (
	Instance            uint64
	PhysicalDevice      uint64
	Device              uint64
	Queue               uint64
	CommandBuffer       uint64
	DeviceMemory        uint64
	Buffer              uint64
	Image               uint64
	ImageView           uint64
	Sampler             uint64
	ShaderModule        uint64
	DescriptorSetLayout uint64
	PipelineLayout      uint64
	DescriptorPool      uint64
	DescriptorSet       uint64
	Pipeline            uint64
	PipelineCache       uint64
	RenderPass          uint64
	Framebuffer         uint64
	Fence               uint64
	Semaphore           uint64
	CommandPool         uint64
	QueryPool           uint64
)

// Extent2D is VkExtent2D.
type Extent2D struct {
	Width  uint32
	Height uint32
}

// Extent3D is VkExtent3D.
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// Offset2D is VkOffset2D.
type Offset2D struct {
	X int32
	Y int32
}

// Offset3D is VkOffset3D.
type Offset3D struct {
	X int32
	Y int32
	Z int32
}

// Rect2D is VkRect2D.
type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

// Viewport is VkViewport.
type Viewport struct {
	X        float32
	Y        float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

// ApplicationInfo is VkApplicationInfo.
type ApplicationInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	PApplicationName   uintptr
	ApplicationVersion uint32
	PEngineName        uintptr
	EngineVersion      uint32
	APIVersion         uint32
}

// InstanceCreateInfo is VkInstanceCreateInfo.
type InstanceCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	Flags                   InstanceCreateFlags
	PApplicationInfo        *ApplicationInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     uintptr
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames uintptr
}

// LayerProperties is VkLayerProperties.
type LayerProperties struct {
	LayerName             [256]byte
	SpecVersion           uint32
	ImplementationVersion uint32
	Description           [256]byte
}

// ExtensionProperties is VkExtensionProperties.
type ExtensionProperties struct {
	ExtensionName [256]byte
	SpecVersion   uint32
}

// PhysicalDeviceProperties is VkPhysicalDeviceProperties.
type PhysicalDeviceProperties struct {
	APIVersion        uint32
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	DeviceType        PhysicalDeviceType
	DeviceName        [256]byte
	PipelineCacheUUID [16]byte
	Limits            PhysicalDeviceLimits
	SparseProperties  PhysicalDeviceSparseProperties
}

// PhysicalDeviceLimits is VkPhysicalDeviceLimits.
type PhysicalDeviceLimits struct {
	MaxImageDimension1D                             uint32
	MaxImageDimension2D                             uint32
	MaxImageDimension3D                             uint32
	MaxImageDimensionCube                           uint32
	MaxImageArrayLayers                             uint32
	MaxTexelBufferElements                          uint32
	MaxUniformBufferRange                           uint32
	MaxStorageBufferRange                           uint32
	MaxPushConstantsSize                            uint32
	MaxMemoryAllocationCount                        uint32
	MaxSamplerAllocationCount                       uint32
	BufferImageGranularity                          DeviceSize
	SparseAddressSpaceSize                          DeviceSize
	MaxBoundDescriptorSets                          uint32
	MaxPerStageDescriptorSamplers                   uint32
	MaxPerStageDescriptorUniformBuffers             uint32
	MaxPerStageDescriptorStorageBuffers             uint32
	MaxPerStageDescriptorSampledImages              uint32
	MaxPerStageDescriptorStorageImages              uint32
	MaxPerStageDescriptorInputAttachments           uint32
	MaxPerStageResources                            uint32
	MaxDescriptorSetSamplers                        uint32
	MaxDescriptorSetUniformBuffers                  uint32
	MaxDescriptorSetUniformBuffersDynamic           uint32
	MaxDescriptorSetStorageBuffers                  uint32
	MaxDescriptorSetStorageBuffersDynamic           uint32
	MaxDescriptorSetSampledImages                   uint32
	MaxDescriptorSetStorageImages                   uint32
	MaxDescriptorSetInputAttachments                uint32
	MaxVertexInputAttributes                        uint32
	MaxVertexInputBindings                          uint32
	MaxVertexInputAttributeOffset                   uint32
	MaxVertexInputBindingStride                     uint32
	MaxVertexOutputComponents                       uint32
	MaxTessellationGenerationLevel                  uint32
	MaxTessellationPatchSize                        uint32
	MaxTessellationControlPerVertexInputComponents  uint32
	MaxTessellationControlPerVertexOutputComponents uint32
	MaxTessellationControlPerPatchOutputComponents  uint32
	MaxTessellationControlTotalOutputComponents     uint32
	MaxTessellationEvaluationInputComponents        uint32
	MaxTessellationEvaluationOutputComponents       uint32
	MaxGeometryShaderInvocations                    uint32
	MaxGeometryInputComponents                      uint32
	MaxGeometryOutputComponents                     uint32
	MaxGeometryOutputVertices                       uint32
	MaxGeometryTotalOutputComponents                uint32
	MaxFragmentInputComponents                      uint32
	MaxFragmentOutputAttachments                    uint32
	MaxFragmentDualSrcAttachments                   uint32
	MaxFragmentCombinedOutputResources              uint32
	MaxComputeSharedMemorySize                      uint32
	MaxComputeWorkGroupCount                        [3]uint32
	MaxComputeWorkGroupInvocations                  uint32
	MaxComputeWorkGroupSize                         [3]uint32
	SubPixelPrecisionBits                           uint32
	SubTexelPrecisionBits                           uint32
	MipmapPrecisionBits                             uint32
	MaxDrawIndexedIndexValue                        uint32
	MaxDrawIndirectCount                            uint32
	MaxSamplerLodBias                               float32
	MaxSamplerAnisotropy                            float32
	MaxViewports                                    uint32
	MaxViewportDimensions                           [2]uint32
	ViewportBoundsRange                             [2]float32
	ViewportSubPixelBits                            uint32
	MinMemoryMapAlignment                           uintptr
	MinTexelBufferOffsetAlignment                   DeviceSize
	MinUniformBufferOffsetAlignment                 DeviceSize
	MinStorageBufferOffsetAlignment                 DeviceSize
	MinTexelOffset                                  int32
	MaxTexelOffset                                  uint32
	MinTexelGatherOffset                            int32
	MaxTexelGatherOffset                            uint32
	MinInterpolationOffset                          float32
	MaxInterpolationOffset                          float32
	SubPixelInterpolationOffsetBits                 uint32
	MaxFramebufferWidth                             uint32
	MaxFramebufferHeight                            uint32
	MaxFramebufferLayers                            uint32
	FramebufferColorSampleCounts                    Flags
	FramebufferDepthSampleCounts                    Flags
	FramebufferStencilSampleCounts                  Flags
	FramebufferNoAttachmentsSampleCounts            Flags
	MaxColorAttachments                             uint32
	SampledImageColorSampleCounts                   Flags
	SampledImageIntegerSampleCounts                 Flags
	SampledImageDepthSampleCounts                   Flags
	SampledImageStencilSampleCounts                 Flags
	StorageImageSampleCounts                        Flags
	MaxSampleMaskWords                              uint32
	TimestampComputeAndGraphics                     Bool32
	TimestampPeriod                                 float32
	MaxClipDistances                                uint32
	MaxCullDistances                                uint32
	MaxCombinedClipAndCullDistances                 uint32
	DiscreteQueuePriorities                         uint32
	PointSizeRange                                  [2]float32
	LineWidthRange                                  [2]float32
	PointSizeGranularity                            float32
	LineWidthGranularity                            float32
	StrictLines                                     Bool32
	StandardSampleLocations                         Bool32
	OptimalBufferCopyOffsetAlignment                DeviceSize
	OptimalBufferCopyRowPitchAlignment              DeviceSize
	NonCoherentAtomSize                             DeviceSize
}

// PhysicalDeviceSparseProperties is VkPhysicalDeviceSparseProperties.
type PhysicalDeviceSparseProperties struct {
	ResidencyStandard2DBlockShape            Bool32
	ResidencyStandard2DMultisampleBlockShape Bool32
	ResidencyStandard3DBlockShape            Bool32
	ResidencyAlignedMipSize                  Bool32
	ResidencyNonResidentStrict               Bool32
}

// PhysicalDeviceProperties2 is VkPhysicalDeviceProperties2.
type PhysicalDeviceProperties2 struct {
	SType      StructureType
	PNext      unsafe.Pointer
	Properties PhysicalDeviceProperties
}

// PhysicalDeviceIDProperties is VkPhysicalDeviceIDProperties.
type PhysicalDeviceIDProperties struct {
	SType           StructureType
	PNext           unsafe.Pointer
	DeviceUUID      [16]byte
	DriverUUID      [16]byte
	DeviceLUID      [LUIDSize]byte
	DeviceNodeMask  uint32
	DeviceLUIDValid Bool32
}

// QueueFamilyProperties is VkQueueFamilyProperties.
type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

// MemoryType is VkMemoryType.
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

// MemoryHeap is VkMemoryHeap.
type MemoryHeap struct {
	Size  DeviceSize
	Flags MemoryHeapFlags
}

// PhysicalDeviceMemoryProperties is VkPhysicalDeviceMemoryProperties.
type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [32]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [16]MemoryHeap
}

// FormatProperties is VkFormatProperties.
type FormatProperties struct {
	LinearTilingFeatures  FormatFeatureFlags
	OptimalTilingFeatures FormatFeatureFlags
	BufferFeatures        FormatFeatureFlags
}

// PhysicalDeviceFeatures is VkPhysicalDeviceFeatures.
type PhysicalDeviceFeatures struct {
	RobustBufferAccess                      Bool32
	FullDrawIndexUint32                     Bool32
	ImageCubeArray                          Bool32
	IndependentBlend                        Bool32
	GeometryShader                          Bool32
	TessellationShader                      Bool32
	SampleRateShading                       Bool32
	DualSrcBlend                            Bool32
	LogicOp                                 Bool32
	MultiDrawIndirect                       Bool32
	DrawIndirectFirstInstance               Bool32
	DepthClamp                              Bool32
	DepthBiasClamp                          Bool32
	FillModeNonSolid                        Bool32
	DepthBounds                             Bool32
	WideLines                               Bool32
	LargePoints                             Bool32
	AlphaToOne                              Bool32
	MultiViewport                           Bool32
	SamplerAnisotropy                       Bool32
	TextureCompressionETC2                  Bool32
	TextureCompressionASTCLDR               Bool32
	TextureCompressionBC                    Bool32
	OcclusionQueryPrecise                   Bool32
	PipelineStatisticsQuery                 Bool32
	VertexPipelineStoresAndAtomics          Bool32
	FragmentStoresAndAtomics                Bool32
	ShaderTessellationAndGeometryPointSize  Bool32
	ShaderImageGatherExtended               Bool32
	ShaderStorageImageExtendedFormats       Bool32
	ShaderStorageImageMultisample           Bool32
	ShaderStorageImageReadWithoutFormat     Bool32
	ShaderStorageImageWriteWithoutFormat    Bool32
	ShaderUniformBufferArrayDynamicIndexing Bool32
	ShaderSampledImageArrayDynamicIndexing  Bool32
	ShaderStorageBufferArrayDynamicIndexing Bool32
	ShaderStorageImageArrayDynamicIndexing  Bool32
	ShaderClipDistance                      Bool32
	ShaderCullDistance                      Bool32
	ShaderFloat64                           Bool32
	ShaderInt64                             Bool32
	ShaderInt16                             Bool32
	ShaderResourceResidency                 Bool32
	ShaderResourceMinLod                    Bool32
	SparseBinding                           Bool32
	SparseResidencyBuffer                   Bool32
	SparseResidencyImage2D                  Bool32
	SparseResidencyImage3D                  Bool32
	SparseResidency2Samples                 Bool32
	SparseResidency4Samples                 Bool32
	SparseResidency8Samples                 Bool32
	SparseResidency16Samples                Bool32
	SparseResidencyAliased                  Bool32
	VariableMultisampleRate                 Bool32
	InheritedQueries                        Bool32
}

// PhysicalDeviceFeatures2 is VkPhysicalDeviceFeatures2.
type PhysicalDeviceFeatures2 struct {
	SType    StructureType
	PNext    unsafe.Pointer
	Features PhysicalDeviceFeatures
}

// PhysicalDeviceVulkan11Features is VkPhysicalDeviceVulkan11Features.
type PhysicalDeviceVulkan11Features struct {
	SType                              StructureType
	PNext                              unsafe.Pointer
	StorageBuffer16BitAccess           Bool32
	UniformAndStorageBuffer16BitAccess Bool32
	StoragePushConstant16              Bool32
	StorageInputOutput16               Bool32
	Multiview                          Bool32
	MultiviewGeometryShader            Bool32
	MultiviewTessellationShader        Bool32
	VariablePointersStorageBuffer      Bool32
	VariablePointers                   Bool32
	ProtectedMemory                    Bool32
	SamplerYcbcrConversion             Bool32
	ShaderDrawParameters               Bool32
}

// PhysicalDeviceVulkan12Features is VkPhysicalDeviceVulkan12Features.
type PhysicalDeviceVulkan12Features struct {
	SType                                              StructureType
	PNext                                              unsafe.Pointer
	SamplerMirrorClampToEdge                           Bool32
	DrawIndirectCount                                  Bool32
	StorageBuffer8BitAccess                            Bool32
	UniformAndStorageBuffer8BitAccess                  Bool32
	StoragePushConstant8                               Bool32
	ShaderBufferInt64Atomics                           Bool32
	ShaderSharedInt64Atomics                           Bool32
	ShaderFloat16                                      Bool32
	ShaderInt8                                         Bool32
	DescriptorIndexing                                 Bool32
	ShaderInputAttachmentArrayDynamicIndexing          Bool32
	ShaderUniformTexelBufferArrayDynamicIndexing       Bool32
	ShaderStorageTexelBufferArrayDynamicIndexing       Bool32
	ShaderUniformBufferArrayNonUniformIndexing         Bool32
	ShaderSampledImageArrayNonUniformIndexing          Bool32
	ShaderStorageBufferArrayNonUniformIndexing         Bool32
	ShaderStorageImageArrayNonUniformIndexing          Bool32
	ShaderInputAttachmentArrayNonUniformIndexing       Bool32
	ShaderUniformTexelBufferArrayNonUniformIndexing    Bool32
	ShaderStorageTexelBufferArrayNonUniformIndexing    Bool32
	DescriptorBindingUniformBufferUpdateAfterBind      Bool32
	DescriptorBindingSampledImageUpdateAfterBind       Bool32
	DescriptorBindingStorageImageUpdateAfterBind       Bool32
	DescriptorBindingStorageBufferUpdateAfterBind      Bool32
	DescriptorBindingUniformTexelBufferUpdateAfterBind Bool32
	DescriptorBindingStorageTexelBufferUpdateAfterBind Bool32
	DescriptorBindingUpdateUnusedWhilePending          Bool32
	DescriptorBindingPartiallyBound                    Bool32
	DescriptorBindingVariableDescriptorCount           Bool32
	RuntimeDescriptorArray                             Bool32
	SamplerFilterMinmax                                Bool32
	ScalarBlockLayout                                  Bool32
	ImagelessFramebuffer                               Bool32
	UniformBufferStandardLayout                        Bool32
	ShaderSubgroupExtendedTypes                        Bool32
	SeparateDepthStencilLayouts                        Bool32
	HostQueryReset                                     Bool32
	TimelineSemaphore                                  Bool32
	BufferDeviceAddress                                Bool32
	BufferDeviceAddressCaptureReplay                   Bool32
	BufferDeviceAddressMultiDevice                     Bool32
	VulkanMemoryModel                                  Bool32
	VulkanMemoryModelDeviceScope                       Bool32
	VulkanMemoryModelAvailabilityVisibilityChains      Bool32
	ShaderOutputViewportIndex                          Bool32
	ShaderOutputLayer                                  Bool32
	SubgroupBroadcastDynamicID                         Bool32
}

// PhysicalDeviceVulkan13Features is VkPhysicalDeviceVulkan13Features.
type PhysicalDeviceVulkan13Features struct {
	SType                                              StructureType
	PNext                                              unsafe.Pointer
	RobustImageAccess                                  Bool32
	InlineUniformBlock                                 Bool32
	DescriptorBindingInlineUniformBlockUpdateAfterBind Bool32
	PipelineCreationCacheControl                       Bool32
	PrivateData                                        Bool32
	ShaderDemoteToHelperInvocation                     Bool32
	ShaderTerminateInvocation                          Bool32
	SubgroupSizeControl                                Bool32
	ComputeFullSubgroups                               Bool32
	Synchronization2                                   Bool32
	TextureCompressionASTCHDR                          Bool32
	ShaderZeroInitializeWorkgroupMemory                Bool32
	DynamicRendering                                   Bool32
	ShaderIntegerDotProduct                            Bool32
	Maintenance4                                       Bool32
}

// DeviceQueueCreateInfo is VkDeviceQueueCreateInfo.
type DeviceQueueCreateInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            DeviceQueueCreateFlags
	QueueFamilyIndex uint32
	QueueCount       uint32
	PQueuePriorities *float32
}

// DeviceCreateInfo is VkDeviceCreateInfo.
type DeviceCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	Flags                   DeviceCreateFlags
	QueueCreateInfoCount    uint32
	PQueueCreateInfos       *DeviceQueueCreateInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     uintptr
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames uintptr
	PEnabledFeatures        *PhysicalDeviceFeatures
}

// MemoryRequirements is VkMemoryRequirements.
type MemoryRequirements struct {
	Size           DeviceSize
	Alignment      DeviceSize
	MemoryTypeBits uint32
}

// MemoryAllocateInfo is VkMemoryAllocateInfo.
type MemoryAllocateInfo struct {
	SType           StructureType
	PNext           unsafe.Pointer
	AllocationSize  DeviceSize
	MemoryTypeIndex uint32
}

// MemoryDedicatedAllocateInfo is VkMemoryDedicatedAllocateInfo.
type MemoryDedicatedAllocateInfo struct {
	SType  StructureType
	PNext  unsafe.Pointer
	Image  Image
	Buffer Buffer
}

// MappedMemoryRange is VkMappedMemoryRange.
type MappedMemoryRange struct {
	SType  StructureType
	PNext  unsafe.Pointer
	Memory DeviceMemory
	Offset DeviceSize
	Size   DeviceSize
}

// ExportMemoryAllocateInfo is VkExportMemoryAllocateInfo.
type ExportMemoryAllocateInfo struct {
	SType       StructureType
	PNext       unsafe.Pointer
	HandleTypes ExternalMemoryHandleTypeFlags
}

// ExportMemoryWin32HandleInfoKHR is VkExportMemoryWin32HandleInfoKHR.
// PAttributes is a SECURITY_ATTRIBUTES pointer, always nil here.
type ExportMemoryWin32HandleInfoKHR struct {
	SType       StructureType
	PNext       unsafe.Pointer
	PAttributes uintptr
	DwAccess    uint32
	Name        uintptr
}

// ImportMemoryWin32HandleInfoKHR is VkImportMemoryWin32HandleInfoKHR.
type ImportMemoryWin32HandleInfoKHR struct {
	SType      StructureType
	PNext      unsafe.Pointer
	HandleType ExternalMemoryHandleTypeFlagBits
	Handle     uintptr
	Name       uintptr
}

// MemoryWin32HandlePropertiesKHR is VkMemoryWin32HandlePropertiesKHR.
type MemoryWin32HandlePropertiesKHR struct {
	SType          StructureType
	PNext          unsafe.Pointer
	MemoryTypeBits uint32
}

// MemoryGetWin32HandleInfoKHR is VkMemoryGetWin32HandleInfoKHR.
type MemoryGetWin32HandleInfoKHR struct {
	SType      StructureType
	PNext      unsafe.Pointer
	Memory     DeviceMemory
	HandleType ExternalMemoryHandleTypeFlagBits
}

// ImportMemoryFdInfoKHR is VkImportMemoryFdInfoKHR.
type ImportMemoryFdInfoKHR struct {
	SType      StructureType
	PNext      unsafe.Pointer
	HandleType ExternalMemoryHandleTypeFlagBits
	Fd         int32
}

// MemoryFdPropertiesKHR is VkMemoryFdPropertiesKHR.
type MemoryFdPropertiesKHR struct {
	SType          StructureType
	PNext          unsafe.Pointer
	MemoryTypeBits uint32
}

// MemoryGetFdInfoKHR is VkMemoryGetFdInfoKHR.
type MemoryGetFdInfoKHR struct {
	SType      StructureType
	PNext      unsafe.Pointer
	Memory     DeviceMemory
	HandleType ExternalMemoryHandleTypeFlagBits
}

// BufferCreateInfo is VkBufferCreateInfo.
type BufferCreateInfo struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	Flags                 BufferCreateFlags
	Size                  DeviceSize
	Usage                 BufferUsageFlags
	SharingMode           SharingMode
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
}

// ExternalMemoryBufferCreateInfo is VkExternalMemoryBufferCreateInfo.
type ExternalMemoryBufferCreateInfo struct {
	SType       StructureType
	PNext       unsafe.Pointer
	HandleTypes ExternalMemoryHandleTypeFlags
}

// ImageCreateInfo is VkImageCreateInfo.
type ImageCreateInfo struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	Flags                 ImageCreateFlags
	ImageType             ImageType
	Format                Format
	Extent                Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               SampleCountFlagBits
	Tiling                ImageTiling
	Usage                 ImageUsageFlags
	SharingMode           SharingMode
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
	InitialLayout         ImageLayout
}

// ExternalMemoryImageCreateInfo is VkExternalMemoryImageCreateInfo.
type ExternalMemoryImageCreateInfo struct {
	SType       StructureType
	PNext       unsafe.Pointer
	HandleTypes ExternalMemoryHandleTypeFlags
}

// ComponentMapping is VkComponentMapping (identity when zero).
type ComponentMapping struct {
	R, G, B, A uint32
}

// ImageSubresourceRange is VkImageSubresourceRange.
type ImageSubresourceRange struct {
	AspectMask     ImageAspectFlags
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageSubresourceLayers is VkImageSubresourceLayers.
type ImageSubresourceLayers struct {
	AspectMask     ImageAspectFlags
	MipLevel       uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageViewCreateInfo is VkImageViewCreateInfo.
type ImageViewCreateInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            ImageViewCreateFlags
	Image            Image
	ViewType         ImageViewType
	Format           Format
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

// ImageViewUsageCreateInfo is VkImageViewUsageCreateInfo.
type ImageViewUsageCreateInfo struct {
	SType StructureType
	PNext unsafe.Pointer
	Usage ImageUsageFlags
}

// SamplerCreateInfo is VkSamplerCreateInfo.
type SamplerCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	Flags                   SamplerCreateFlags
	MagFilter               Filter
	MinFilter               Filter
	MipmapMode              SamplerMipmapMode
	AddressModeU            SamplerAddressMode
	AddressModeV            SamplerAddressMode
	AddressModeW            SamplerAddressMode
	MipLodBias              float32
	AnisotropyEnable        Bool32
	MaxAnisotropy           float32
	CompareEnable           Bool32
	CompareOp               CompareOp
	MinLod                  float32
	MaxLod                  float32
	BorderColor             BorderColor
	UnnormalizedCoordinates Bool32
}

// ShaderModuleCreateInfo is VkShaderModuleCreateInfo.
type ShaderModuleCreateInfo struct {
	SType    StructureType
	PNext    unsafe.Pointer
	Flags    ShaderModuleCreateFlags
	CodeSize uintptr
	PCode    *uint32
}

// DescriptorSetLayoutBinding is VkDescriptorSetLayoutBinding.
type DescriptorSetLayoutBinding struct {
	Binding            uint32
	DescriptorType     DescriptorType
	DescriptorCount    uint32
	StageFlags         ShaderStageFlags
	PImmutableSamplers *Sampler
}

// DescriptorSetLayoutCreateInfo is VkDescriptorSetLayoutCreateInfo.
type DescriptorSetLayoutCreateInfo struct {
	SType        StructureType
	PNext        unsafe.Pointer
	Flags        DescriptorSetLayoutCreateFlags
	BindingCount uint32
	PBindings    *DescriptorSetLayoutBinding
}

// PushConstantRange is VkPushConstantRange.
type PushConstantRange struct {
	StageFlags ShaderStageFlags
	Offset     uint32
	Size       uint32
}

// PipelineLayoutCreateInfo is VkPipelineLayoutCreateInfo.
type PipelineLayoutCreateInfo struct {
	SType                  StructureType
	PNext                  unsafe.Pointer
	Flags                  PipelineLayoutCreateFlags
	SetLayoutCount         uint32
	PSetLayouts            *DescriptorSetLayout
	PushConstantRangeCount uint32
	PPushConstantRanges    *PushConstantRange
}

// DescriptorPoolSize is VkDescriptorPoolSize.
type DescriptorPoolSize struct {
	Type            DescriptorType
	DescriptorCount uint32
}

// DescriptorPoolCreateInfo is VkDescriptorPoolCreateInfo.
type DescriptorPoolCreateInfo struct {
	SType         StructureType
	PNext         unsafe.Pointer
	Flags         DescriptorPoolCreateFlags
	MaxSets       uint32
	PoolSizeCount uint32
	PPoolSizes    *DescriptorPoolSize
}

// DescriptorSetAllocateInfo is VkDescriptorSetAllocateInfo.
type DescriptorSetAllocateInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	DescriptorPool     DescriptorPool
	DescriptorSetCount uint32
	PSetLayouts        *DescriptorSetLayout
}

// DescriptorImageInfo is VkDescriptorImageInfo.
type DescriptorImageInfo struct {
	Sampler     Sampler
	ImageView   ImageView
	ImageLayout ImageLayout
}

// DescriptorBufferInfo is VkDescriptorBufferInfo.
type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset DeviceSize
	Range  DeviceSize
}

// WriteDescriptorSet is VkWriteDescriptorSet.
type WriteDescriptorSet struct {
	SType            StructureType
	PNext            unsafe.Pointer
	DstSet           DescriptorSet
	DstBinding       uint32
	DstArrayElement  uint32
	DescriptorCount  uint32
	DescriptorType   DescriptorType
	PImageInfo       *DescriptorImageInfo
	PBufferInfo      *DescriptorBufferInfo
	PTexelBufferView uintptr
}

// CopyDescriptorSet is VkCopyDescriptorSet.
type CopyDescriptorSet struct {
	SType           StructureType
	PNext           unsafe.Pointer
	SrcSet          DescriptorSet
	SrcBinding      uint32
	SrcArrayElement uint32
	DstSet          DescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorCount uint32
}

// VertexInputBindingDescription is VkVertexInputBindingDescription.
type VertexInputBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate VertexInputRate
}

// VertexInputAttributeDescription is VkVertexInputAttributeDescription.
type VertexInputAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   Format
	Offset   uint32
}

// PipelineVertexInputStateCreateInfo is VkPipelineVertexInputStateCreateInfo.
type PipelineVertexInputStateCreateInfo struct {
	SType                           StructureType
	PNext                           unsafe.Pointer
	Flags                           PipelineVertexInputStateCreateFlags
	VertexBindingDescriptionCount   uint32
	PVertexBindingDescriptions      *VertexInputBindingDescription
	VertexAttributeDescriptionCount uint32
	PVertexAttributeDescriptions    *VertexInputAttributeDescription
}

// PipelineInputAssemblyStateCreateInfo is VkPipelineInputAssemblyStateCreateInfo.
type PipelineInputAssemblyStateCreateInfo struct {
	SType                  StructureType
	PNext                  unsafe.Pointer
	Flags                  PipelineInputAssemblyStateCreateFlags
	Topology               PrimitiveTopology
	PrimitiveRestartEnable Bool32
}

// PipelineViewportStateCreateInfo is VkPipelineViewportStateCreateInfo.
type PipelineViewportStateCreateInfo struct {
	SType         StructureType
	PNext         unsafe.Pointer
	Flags         PipelineViewportStateCreateFlags
	ViewportCount uint32
	PViewports    *Viewport
	ScissorCount  uint32
	PScissors     *Rect2D
}

// PipelineRasterizationStateCreateInfo is VkPipelineRasterizationStateCreateInfo.
type PipelineRasterizationStateCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	Flags                   PipelineRasterizationStateCreateFlags
	DepthClampEnable        Bool32
	RasterizerDiscardEnable Bool32
	PolygonMode             PolygonMode
	CullMode                CullModeFlags
	FrontFace               FrontFace
	DepthBiasEnable         Bool32
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

// PipelineMultisampleStateCreateInfo is VkPipelineMultisampleStateCreateInfo.
type PipelineMultisampleStateCreateInfo struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	Flags                 PipelineMultisampleStateCreateFlags
	RasterizationSamples  SampleCountFlagBits
	SampleShadingEnable   Bool32
	MinSampleShading      float32
	PSampleMask           *SampleMask
	AlphaToCoverageEnable Bool32
	AlphaToOneEnable      Bool32
}

// StencilOpState is VkStencilOpState.
type StencilOpState struct {
	FailOp      uint32
	PassOp      uint32
	DepthFailOp uint32
	CompareOp   CompareOp
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

// PipelineDepthStencilStateCreateInfo is VkPipelineDepthStencilStateCreateInfo.
type PipelineDepthStencilStateCreateInfo struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	Flags                 PipelineDepthStencilStateCreateFlags
	DepthTestEnable       Bool32
	DepthWriteEnable      Bool32
	DepthCompareOp        CompareOp
	DepthBoundsTestEnable Bool32
	StencilTestEnable     Bool32
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

// PipelineColorBlendAttachmentState is VkPipelineColorBlendAttachmentState.
type PipelineColorBlendAttachmentState struct {
	BlendEnable         Bool32
	SrcColorBlendFactor BlendFactor
	DstColorBlendFactor BlendFactor
	ColorBlendOp        BlendOp
	SrcAlphaBlendFactor BlendFactor
	DstAlphaBlendFactor BlendFactor
	AlphaBlendOp        BlendOp
	ColorWriteMask      ColorComponentFlags
}

// PipelineColorBlendStateCreateInfo is VkPipelineColorBlendStateCreateInfo.
type PipelineColorBlendStateCreateInfo struct {
	SType           StructureType
	PNext           unsafe.Pointer
	Flags           PipelineColorBlendStateCreateFlags
	LogicOpEnable   Bool32
	LogicOp         uint32
	AttachmentCount uint32
	PAttachments    *PipelineColorBlendAttachmentState
	BlendConstants  [4]float32
}

// PipelineDynamicStateCreateInfo is VkPipelineDynamicStateCreateInfo.
type PipelineDynamicStateCreateInfo struct {
	SType             StructureType
	PNext             unsafe.Pointer
	Flags             PipelineDynamicStateCreateFlags
	DynamicStateCount uint32
	PDynamicStates    *DynamicState
}

// PipelineShaderStageCreateInfo is VkPipelineShaderStageCreateInfo.
type PipelineShaderStageCreateInfo struct {
	SType               StructureType
	PNext               unsafe.Pointer
	Flags               PipelineShaderStageCreateFlags
	Stage               ShaderStageFlags
	Module              ShaderModule
	PName               uintptr
	PSpecializationInfo uintptr
}

// GraphicsPipelineCreateInfo is VkGraphicsPipelineCreateInfo.
type GraphicsPipelineCreateInfo struct {
	SType               StructureType
	PNext               unsafe.Pointer
	Flags               PipelineCreateFlags
	StageCount          uint32
	PStages             *PipelineShaderStageCreateInfo
	PVertexInputState   *PipelineVertexInputStateCreateInfo
	PInputAssemblyState *PipelineInputAssemblyStateCreateInfo
	PTessellationState  uintptr
	PViewportState      *PipelineViewportStateCreateInfo
	PRasterizationState *PipelineRasterizationStateCreateInfo
	PMultisampleState   *PipelineMultisampleStateCreateInfo
	PDepthStencilState  *PipelineDepthStencilStateCreateInfo
	PColorBlendState    *PipelineColorBlendStateCreateInfo
	PDynamicState       *PipelineDynamicStateCreateInfo
	Layout              PipelineLayout
	RenderPass          RenderPass
	Subpass             uint32
	BasePipelineHandle  Pipeline
	BasePipelineIndex   int32
}

// ComputePipelineCreateInfo is VkComputePipelineCreateInfo.
type ComputePipelineCreateInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	Flags              PipelineCreateFlags
	Stage              PipelineShaderStageCreateInfo
	Layout             PipelineLayout
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
}

// PipelineRenderingCreateInfo is VkPipelineRenderingCreateInfo.
type PipelineRenderingCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	ViewMask                uint32
	ColorAttachmentCount    uint32
	PColorAttachmentFormats *Format
	DepthAttachmentFormat   Format
	StencilAttachmentFormat Format
}

// PipelineCacheCreateInfo is VkPipelineCacheCreateInfo.
type PipelineCacheCreateInfo struct {
	SType           StructureType
	PNext           unsafe.Pointer
	Flags           PipelineCacheCreateFlags
	InitialDataSize uintptr
	PInitialData    unsafe.Pointer
}

// AttachmentDescription is VkAttachmentDescription.
type AttachmentDescription struct {
	Flags          AttachmentDescriptionFlags
	Format         Format
	Samples        SampleCountFlagBits
	LoadOp         AttachmentLoadOp
	StoreOp        AttachmentStoreOp
	StencilLoadOp  AttachmentLoadOp
	StencilStoreOp AttachmentStoreOp
	InitialLayout  ImageLayout
	FinalLayout    ImageLayout
}

// AttachmentReference is VkAttachmentReference.
type AttachmentReference struct {
	Attachment uint32
	Layout     ImageLayout
}

// SubpassDescription is VkSubpassDescription.
type SubpassDescription struct {
	Flags                   SubpassDescriptionFlags
	PipelineBindPoint       PipelineBindPoint
	InputAttachmentCount    uint32
	PInputAttachments       *AttachmentReference
	ColorAttachmentCount    uint32
	PColorAttachments       *AttachmentReference
	PResolveAttachments     *AttachmentReference
	PDepthStencilAttachment *AttachmentReference
	PreserveAttachmentCount uint32
	PPreserveAttachments    *uint32
}

// RenderPassCreateInfo is VkRenderPassCreateInfo.
type RenderPassCreateInfo struct {
	SType           StructureType
	PNext           unsafe.Pointer
	Flags           RenderPassCreateFlags
	AttachmentCount uint32
	PAttachments    *AttachmentDescription
	SubpassCount    uint32
	PSubpasses      *SubpassDescription
	DependencyCount uint32
	PDependencies   uintptr
}

// FramebufferCreateInfo is VkFramebufferCreateInfo.
type FramebufferCreateInfo struct {
	SType           StructureType
	PNext           unsafe.Pointer
	Flags           FramebufferCreateFlags
	RenderPass      RenderPass
	AttachmentCount uint32
	PAttachments    *ImageView
	Width           uint32
	Height          uint32
	Layers          uint32
}

// ClearColorValue is the float32 arm of VkClearColorValue.
type ClearColorValue struct {
	Float32 [4]float32
}

// ClearDepthStencilValue is VkClearDepthStencilValue.
type ClearDepthStencilValue struct {
	Depth   float32
	Stencil uint32
}

// ClearValue is VkClearValue (a 16-byte union).
type ClearValue struct {
	Raw [4]uint32
}

// ClearColor builds a ClearValue from four float components.
func ClearColor(r, g, b, a float32) ClearValue {
	return ClearValue{Raw: [4]uint32{
		math.Float32bits(r), math.Float32bits(g), math.Float32bits(b), math.Float32bits(a),
	}}
}

// ClearDepth builds a ClearValue from a depth value.
func ClearDepth(depth float32) ClearValue {
	return ClearValue{Raw: [4]uint32{math.Float32bits(depth), 0, 0, 0}}
}

// RenderPassBeginInfo is VkRenderPassBeginInfo.
type RenderPassBeginInfo struct {
	SType           StructureType
	PNext           unsafe.Pointer
	RenderPass      RenderPass
	Framebuffer     Framebuffer
	RenderArea      Rect2D
	ClearValueCount uint32
	PClearValues    *ClearValue
}

// RenderingAttachmentInfo is VkRenderingAttachmentInfo.
type RenderingAttachmentInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	ImageView          ImageView
	ImageLayout        ImageLayout
	ResolveMode        ResolveModeFlagBits
	ResolveImageView   ImageView
	ResolveImageLayout ImageLayout
	LoadOp             AttachmentLoadOp
	StoreOp            AttachmentStoreOp
	ClearValue         ClearValue
}

// RenderingInfo is VkRenderingInfo.
type RenderingInfo struct {
	SType                StructureType
	PNext                unsafe.Pointer
	Flags                RenderingFlags
	RenderArea           Rect2D
	LayerCount           uint32
	ViewMask             uint32
	ColorAttachmentCount uint32
	PColorAttachments    *RenderingAttachmentInfo
	PDepthAttachment     *RenderingAttachmentInfo
	PStencilAttachment   *RenderingAttachmentInfo
}

// MemoryBarrier is VkMemoryBarrier.
type MemoryBarrier struct {
	SType         StructureType
	PNext         unsafe.Pointer
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
}

// BufferMemoryBarrier is VkBufferMemoryBarrier.
type BufferMemoryBarrier struct {
	SType               StructureType
	PNext               unsafe.Pointer
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              Buffer
	Offset              DeviceSize
	Size                DeviceSize
}

// ImageMemoryBarrier is VkImageMemoryBarrier.
type ImageMemoryBarrier struct {
	SType               StructureType
	PNext               unsafe.Pointer
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	OldLayout           ImageLayout
	NewLayout           ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
}

// BufferMemoryBarrier2 is VkBufferMemoryBarrier2.
type BufferMemoryBarrier2 struct {
	SType               StructureType
	PNext               unsafe.Pointer
	SrcStageMask        PipelineStageFlags2
	SrcAccessMask       AccessFlags2
	DstStageMask        PipelineStageFlags2
	DstAccessMask       AccessFlags2
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              Buffer
	Offset              DeviceSize
	Size                DeviceSize
}

// ImageMemoryBarrier2 is VkImageMemoryBarrier2.
type ImageMemoryBarrier2 struct {
	SType               StructureType
	PNext               unsafe.Pointer
	SrcStageMask        PipelineStageFlags2
	SrcAccessMask       AccessFlags2
	DstStageMask        PipelineStageFlags2
	DstAccessMask       AccessFlags2
	OldLayout           ImageLayout
	NewLayout           ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
}

// DependencyInfo is VkDependencyInfo.
type DependencyInfo struct {
	SType                    StructureType
	PNext                    unsafe.Pointer
	DependencyFlags          DependencyFlags
	MemoryBarrierCount       uint32
	PMemoryBarriers          uintptr
	BufferMemoryBarrierCount uint32
	PBufferMemoryBarriers    *BufferMemoryBarrier2
	ImageMemoryBarrierCount  uint32
	PImageMemoryBarriers     *ImageMemoryBarrier2
}

// BufferCopy is VkBufferCopy.
type BufferCopy struct {
	SrcOffset DeviceSize
	DstOffset DeviceSize
	Size      DeviceSize
}

// BufferImageCopy is VkBufferImageCopy.
type BufferImageCopy struct {
	BufferOffset      DeviceSize
	BufferRowLength   uint32
	BufferImageHeight uint32
	ImageSubresource  ImageSubresourceLayers
	ImageOffset       Offset3D
	ImageExtent       Extent3D
}

// ImageCopy is VkImageCopy.
type ImageCopy struct {
	SrcSubresource ImageSubresourceLayers
	SrcOffset      Offset3D
	DstSubresource ImageSubresourceLayers
	DstOffset      Offset3D
	Extent         Extent3D
}

// ImageBlit is VkImageBlit.
type ImageBlit struct {
	SrcSubresource ImageSubresourceLayers
	SrcOffsets     [2]Offset3D
	DstSubresource ImageSubresourceLayers
	DstOffsets     [2]Offset3D
}

// ImageBlit2 is VkImageBlit2.
type ImageBlit2 struct {
	SType          StructureType
	PNext          unsafe.Pointer
	SrcSubresource ImageSubresourceLayers
	SrcOffsets     [2]Offset3D
	DstSubresource ImageSubresourceLayers
	DstOffsets     [2]Offset3D
}

// BlitImageInfo2 is VkBlitImageInfo2.
type BlitImageInfo2 struct {
	SType          StructureType
	PNext          unsafe.Pointer
	SrcImage       Image
	SrcImageLayout ImageLayout
	DstImage       Image
	DstImageLayout ImageLayout
	RegionCount    uint32
	PRegions       *ImageBlit2
	Filter         Filter
}

// ImageResolve2 is VkImageResolve2.
type ImageResolve2 struct {
	SType          StructureType
	PNext          unsafe.Pointer
	SrcSubresource ImageSubresourceLayers
	SrcOffset      Offset3D
	DstSubresource ImageSubresourceLayers
	DstOffset      Offset3D
	Extent         Extent3D
}

// ResolveImageInfo2 is VkResolveImageInfo2.
type ResolveImageInfo2 struct {
	SType          StructureType
	PNext          unsafe.Pointer
	SrcImage       Image
	SrcImageLayout ImageLayout
	DstImage       Image
	DstImageLayout ImageLayout
	RegionCount    uint32
	PRegions       *ImageResolve2
}

// FenceCreateInfo is VkFenceCreateInfo.
type FenceCreateInfo struct {
	SType StructureType
	PNext unsafe.Pointer
	Flags FenceCreateFlags
}

// SemaphoreCreateInfo is VkSemaphoreCreateInfo.
type SemaphoreCreateInfo struct {
	SType StructureType
	PNext unsafe.Pointer
	Flags SemaphoreCreateFlags
}

// SemaphoreTypeCreateInfo is VkSemaphoreTypeCreateInfo.
type SemaphoreTypeCreateInfo struct {
	SType         StructureType
	PNext         unsafe.Pointer
	SemaphoreType SemaphoreType
	InitialValue  uint64
}

// ExportSemaphoreCreateInfo is VkExportSemaphoreCreateInfo.
type ExportSemaphoreCreateInfo struct {
	SType       StructureType
	PNext       unsafe.Pointer
	HandleTypes ExternalSemaphoreHandleTypeFlags
}

// ExportSemaphoreWin32HandleInfoKHR is VkExportSemaphoreWin32HandleInfoKHR.
type ExportSemaphoreWin32HandleInfoKHR struct {
	SType       StructureType
	PNext       unsafe.Pointer
	PAttributes uintptr
	DwAccess    uint32
	Name        uintptr
}

// ImportSemaphoreWin32HandleInfoKHR is VkImportSemaphoreWin32HandleInfoKHR.
type ImportSemaphoreWin32HandleInfoKHR struct {
	SType      StructureType
	PNext      unsafe.Pointer
	Semaphore  Semaphore
	Flags      Flags
	HandleType ExternalSemaphoreHandleTypeFlagBits
	Handle     uintptr
	Name       uintptr
}

// SemaphoreGetWin32HandleInfoKHR is VkSemaphoreGetWin32HandleInfoKHR.
type SemaphoreGetWin32HandleInfoKHR struct {
	SType      StructureType
	PNext      unsafe.Pointer
	Semaphore  Semaphore
	HandleType ExternalSemaphoreHandleTypeFlagBits
}

// ImportSemaphoreFdInfoKHR is VkImportSemaphoreFdInfoKHR.
type ImportSemaphoreFdInfoKHR struct {
	SType      StructureType
	PNext      unsafe.Pointer
	Semaphore  Semaphore
	Flags      Flags
	HandleType ExternalSemaphoreHandleTypeFlagBits
	Fd         int32
}

// SemaphoreGetFdInfoKHR is VkSemaphoreGetFdInfoKHR.
type SemaphoreGetFdInfoKHR struct {
	SType      StructureType
	PNext      unsafe.Pointer
	Semaphore  Semaphore
	HandleType ExternalSemaphoreHandleTypeFlagBits
}

// SemaphoreWaitInfo is VkSemaphoreWaitInfo.
type SemaphoreWaitInfo struct {
	SType          StructureType
	PNext          unsafe.Pointer
	Flags          Flags
	SemaphoreCount uint32
	PSemaphores    *Semaphore
	PValues        *uint64
}

// SemaphoreSignalInfo is VkSemaphoreSignalInfo.
type SemaphoreSignalInfo struct {
	SType     StructureType
	PNext     unsafe.Pointer
	Semaphore Semaphore
	Value     uint64
}

// TimelineSemaphoreSubmitInfo is VkTimelineSemaphoreSubmitInfo.
type TimelineSemaphoreSubmitInfo struct {
	SType                     StructureType
	PNext                     unsafe.Pointer
	WaitSemaphoreValueCount   uint32
	PWaitSemaphoreValues      *uint64
	SignalSemaphoreValueCount uint32
	PSignalSemaphoreValues    *uint64
}

// SubmitInfo is VkSubmitInfo.
type SubmitInfo struct {
	SType                StructureType
	PNext                unsafe.Pointer
	WaitSemaphoreCount   uint32
	PWaitSemaphores      *Semaphore
	PWaitDstStageMask    *PipelineStageFlags
	CommandBufferCount   uint32
	PCommandBuffers      *CommandBuffer
	SignalSemaphoreCount uint32
	PSignalSemaphores    *Semaphore
}

// CommandPoolCreateInfo is VkCommandPoolCreateInfo.
type CommandPoolCreateInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            CommandPoolCreateFlags
	QueueFamilyIndex uint32
}

// CommandBufferAllocateInfo is VkCommandBufferAllocateInfo.
type CommandBufferAllocateInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	CommandPool        CommandPool
	Level              CommandBufferLevel
	CommandBufferCount uint32
}

// CommandBufferBeginInfo is VkCommandBufferBeginInfo.
type CommandBufferBeginInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            CommandBufferUsageFlags
	PInheritanceInfo uintptr
}

// QueryPoolCreateInfo is VkQueryPoolCreateInfo.
type QueryPoolCreateInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	Flags              QueryPoolCreateFlags
	QueryType          QueryType
	QueryCount         uint32
	PipelineStatistics QueryPipelineStatisticFlags
}

// PhysicalDeviceExternalImageFormatInfo is VkPhysicalDeviceExternalImageFormatInfo.
type PhysicalDeviceExternalImageFormatInfo struct {
	SType      StructureType
	PNext      unsafe.Pointer
	HandleType ExternalMemoryHandleTypeFlagBits
}

// PhysicalDeviceImageFormatInfo2 is VkPhysicalDeviceImageFormatInfo2.
type PhysicalDeviceImageFormatInfo2 struct {
	SType  StructureType
	PNext  unsafe.Pointer
	Format Format
	Type   ImageType
	Tiling ImageTiling
	Usage  ImageUsageFlags
	Flags  ImageCreateFlags
}

// ImageFormatProperties is VkImageFormatProperties.
type ImageFormatProperties struct {
	MaxExtent       Extent3D
	MaxMipLevels    uint32
	MaxArrayLayers  uint32
	SampleCounts    Flags
	MaxResourceSize DeviceSize
}

// ImageFormatProperties2 is VkImageFormatProperties2.
type ImageFormatProperties2 struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	ImageFormatProperties ImageFormatProperties
}

// ExternalMemoryProperties is VkExternalMemoryProperties.
type ExternalMemoryProperties struct {
	ExternalMemoryFeatures        ExternalMemoryFeatureFlags
	ExportFromImportedHandleTypes ExternalMemoryHandleTypeFlags
	CompatibleHandleTypes         ExternalMemoryHandleTypeFlags
}

// ExternalImageFormatProperties is VkExternalImageFormatProperties.
type ExternalImageFormatProperties struct {
	SType                    StructureType
	PNext                    unsafe.Pointer
	ExternalMemoryProperties ExternalMemoryProperties
}
